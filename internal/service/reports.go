package service

import (
	"context"

	"github.com/TEJ12356788/atmosphere/internal/ids"
	"github.com/TEJ12356788/atmosphere/internal/models"
	"github.com/TEJ12356788/atmosphere/internal/store"
)

type ReportInput struct {
	ContentID   string `json:"content_id" validate:"required"`
	ContentType string `json:"content_type" validate:"required,oneof=media circle event promotion user"`
	Reason      string `json:"reason" validate:"required,max=1000"`
}

// ReportContent files a pending report. Reports on media are also linked
// from the media record.
func (s *Service) ReportContent(ctx context.Context, sess models.Session, in ReportInput) (models.Report, error) {
	if err := validateInput(in); err != nil {
		return models.Report{}, err
	}
	report := models.Report{
		ReportID:    ids.GenerateID(ids.PrefixReport),
		ReporterID:  sess.UserID,
		ContentID:   in.ContentID,
		ContentType: in.ContentType,
		Reason:      in.Reason,
		Status:      models.ReportPending,
		Timestamp:   s.now(),
	}

	unlock := s.lock(store.Media, store.Reports)
	err := s.fileReport(ctx, report)
	unlock()
	if err != nil {
		return models.Report{}, err
	}

	s.flush(ctx, []pendingNotification{{
		userID:    sess.UserID,
		kind:      NotifyReport,
		content:   "Thanks, your report has been received and will be reviewed.",
		relatedID: report.ReportID,
	}})
	return report, nil
}

func (s *Service) fileReport(ctx context.Context, report models.Report) error {
	var reports models.Reports
	if err := s.Store.Load(ctx, store.Reports, &reports); err != nil {
		return err
	}
	reports = append(reports, report)
	if err := s.Store.Save(ctx, store.Reports, reports); err != nil {
		return err
	}

	if report.ContentType != "media" {
		return nil
	}
	var media models.MediaList
	if err := s.Store.Load(ctx, store.Media, &media); err != nil {
		return err
	}
	for i := range media {
		if media[i].MediaID == report.ContentID {
			media[i].Reports, _ = addUnique(media[i].Reports, report.ReportID)
			return s.Store.Save(ctx, store.Media, media)
		}
	}
	return nil
}

func (s *Service) PendingReports(ctx context.Context) ([]models.Report, error) {
	var reports models.Reports
	if err := s.load(ctx, store.Reports, &reports); err != nil {
		return nil, err
	}
	out := []models.Report{}
	for _, r := range reports {
		if r.Status == models.ReportPending {
			out = append(out, r)
		}
	}
	return out, nil
}
