package service

import (
	"context"
	"io"
	"time"

	"github.com/stainprep/stainprep/internal/domain"
	"github.com/stainprep/stainprep/internal/export"
)

type exportService struct {
	plans     PlanService
	observers []UseCaseObserver
}

func NewExportService(plans PlanService, observers ...UseCaseObserver) ExportService {
	return &exportService{plans: plans, observers: observers}
}

func (s *exportService) Export(ctx context.Context, format domain.ExportFormat, w io.Writer) (plan *domain.PrepPlan, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observers, "export_plan", start, err, map[string]any{"format": string(format)})
	}()

	if !domain.ValidExportFormats[string(format)] {
		return nil, domain.Validationf("format", "unknown export format %q (use csv or xlsx)", string(format))
	}

	plan, err = s.plans.Build(ctx)
	if err != nil {
		return nil, err
	}

	switch format {
	case domain.ExportXLSX:
		err = export.WriteXLSX(w, plan)
	default:
		err = export.WriteCSV(w, plan)
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}
