package service_test

import (
	"errors"
	"fmt"
	"testing"

	"go.uber.org/mock/gomock"

	"rulebook-api/internal/content"
	"rulebook-api/internal/repository"
	repomocks "rulebook-api/internal/repository/mocks"
	"rulebook-api/internal/service"
)

func TestBrowseService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockRepository(ctrl)
	svc := service.NewBrowseService(repo)
	ctx := testContext()

	repo.EXPECT().ListDefinitions(gomock.Any(), content.EnvironmentBeach).
		Return([]content.Definition{{ID: "d1", Term: "Antenna"}}, nil)
	defs, err := svc.Definitions(ctx, "beach")
	if err != nil || len(defs) != 1 {
		t.Errorf("Definitions() = %v, %v", defs, err)
	}

	repo.EXPECT().ListDiagrams(gomock.Any(), content.EnvironmentIndoor).Return([]content.Diagram{}, nil)
	diagrams, err := svc.Diagrams(ctx, "INDOOR")
	if err != nil || diagrams == nil {
		t.Errorf("Diagrams() = %v, %v", diagrams, err)
	}

	repo.EXPECT().ListGestures(gomock.Any(), content.EnvironmentIndoor).Return([]content.Gesture{{ID: "ge1"}}, nil)
	if _, err := svc.Gestures(ctx, "indoor"); err != nil {
		t.Errorf("Gestures() error = %v", err)
	}

	repo.EXPECT().ListProtocols(gomock.Any(), content.EnvironmentIndoor).
		Return(&content.Protocols{Game: []content.Protocol{{ID: "p1"}}, Other: []content.Protocol{}}, nil)
	protocols, err := svc.Protocols(ctx, "indoor")
	if err != nil || len(protocols.Game) != 1 {
		t.Errorf("Protocols() = %+v, %v", protocols, err)
	}
}

func TestBrowseService_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockRepository(ctrl)
	svc := service.NewBrowseService(repo)
	ctx := testContext()

	tests := []struct {
		name   string
		setup  func()
		env    string
		wantIs error
	}{
		{
			name:  "invalid environment",
			setup: func() {},
			env:   "grass",
		},
		{
			name: "backend unavailable",
			setup: func() {
				repo.EXPECT().ListDefinitions(gomock.Any(), gomock.Any()).
					Return(nil, &repository.Error{Op: "list_definitions", Err: repository.ErrUnavailable})
			},
			env:    "indoor",
			wantIs: service.ErrExternalService,
		},
		{
			name: "not found",
			setup: func() {
				repo.EXPECT().ListDefinitions(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("table missing: %w", repository.ErrNotFound))
			},
			env:    "indoor",
			wantIs: service.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			_, err := svc.Definitions(ctx, tt.env)
			if tt.wantIs == nil {
				var validationErr *service.ValidationError
				if !errors.As(err, &validationErr) || validationErr.Field != "env" {
					t.Errorf("error = %v, want ValidationError on env", err)
				}
				return
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want %v", err, tt.wantIs)
			}
		})
	}
}
