package service

import (
	"context"
	"time"

	"github.com/stainprep/stainprep/internal/calc"
	"github.com/stainprep/stainprep/internal/domain"
	"github.com/stainprep/stainprep/internal/repository"
)

type planService struct {
	worksheet WorksheetService
	reagents  repository.ReagentRepo
	observers []UseCaseObserver
}

func NewPlanService(worksheet WorksheetService, reagents repository.ReagentRepo, observers ...UseCaseObserver) PlanService {
	return &planService{
		worksheet: worksheet,
		reagents:  reagents,
		observers: observers,
	}
}

func (s *planService) Build(ctx context.Context) (plan *domain.PrepPlan, err error) {
	start := time.Now()
	defer func() {
		fields := map[string]any{}
		if plan != nil {
			fields["entries"] = plan.EntryCount()
			fields["total_ul"] = plan.GrandTotalUL
			fields["over_threshold"] = plan.OverThreshold
		}
		observe(ctx, s.observers, "build_plan", start, err, fields)
	}()

	setup, err := s.worksheet.Setup(ctx)
	if err != nil {
		return nil, err
	}
	reagents, err := s.reagents.List(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.worksheet.Assignments(ctx)
	if err != nil {
		return nil, err
	}

	return calc.BuildPlan(calc.Input{
		Setup:       setup,
		Reagents:    reagents,
		Assignments: assignments,
	})
}
