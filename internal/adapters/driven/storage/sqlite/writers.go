package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
	"github.com/beacon-hill-archive/bhexport/internal/logger"
)

// WriteBills inserts bill rows. A duplicate artifact id fails the write.
func (a *Archive) WriteBills(ctx context.Context, bills []domain.Bill) error {
	return a.insertAll(ctx, "bills",
		`INSERT INTO bills (
			artifact_id, bill_id, bill_label, session, committee_id, title, bill_url,
			created_at, computed_state, computed_reason, deadline_60, deadline_90,
			effective_deadline, reported_out, reported_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(bills), func(stmt *sql.Stmt, i int) error {
			b := &bills[i]
			_, err := stmt.ExecContext(ctx,
				b.ArtifactID, b.BillID, b.BillLabel, b.Session, b.CommitteeID, b.Title, b.BillURL,
				b.CreatedAt, b.ComputedState, b.ComputedReason, b.Deadline60, b.Deadline90,
				b.EffectiveDeadline, b.ReportedOut, b.ReportedDate)
			return err
		})
}

// WriteTimelineActions inserts timeline rows in the given order.
func (a *Archive) WriteTimelineActions(ctx context.Context, actions []domain.TimelineAction) error {
	return a.insertAll(ctx, "timeline_actions",
		`INSERT INTO timeline_actions (
			action_id, artifact_id, action_date, branch, action_type, action_label,
			category, category_order, raw_text, extracted_data, confidence
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(actions), func(stmt *sql.Stmt, i int) error {
			t := &actions[i]
			_, err := stmt.ExecContext(ctx,
				t.ActionID, t.ArtifactID, t.ActionDate, t.Branch, t.ActionType, t.ActionLabel,
				t.Category, t.CategoryOrder, t.RawText, t.ExtractedData, t.Confidence)
			return err
		})
}

// WriteHearingRecords inserts hearing rows.
func (a *Archive) WriteHearingRecords(ctx context.Context, hearings []domain.HearingRecord) error {
	return a.insertAll(ctx, "hearing_records",
		`INSERT INTO hearing_records (
			record_id, artifact_id, hearing_id, hearing_date, hearing_url,
			announcement_date, scheduled_hearing_date, notice_gap_days
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		len(hearings), func(stmt *sql.Stmt, i int) error {
			h := &hearings[i]
			_, err := stmt.ExecContext(ctx,
				h.RecordID, h.ArtifactID, h.HearingID, h.HearingDate, h.HearingURL,
				h.AnnouncementDate, h.ScheduledHearingDate, h.NoticeGapDays)
			return err
		})
}

const insertDocument = `INSERT OR IGNORE INTO documents (
	document_id, artifact_id, bill_id, document_type, source_url, preview,
	full_text, content_hash, parser_module, parser_version, confidence, needs_review
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// WriteDocuments inserts artifact-linked documents, then fills in
// document_index rows whose id is not already present. A failed primary
// insert fails the write; a failed secondary insert is counted as skipped.
func (a *Archive) WriteDocuments(ctx context.Context, primary, secondary []domain.Document) (domain.ReconcileStats, error) {
	var stats domain.ReconcileStats

	err := a.insertAll(ctx, "documents", insertDocument, len(primary), func(stmt *sql.Stmt, i int) error {
		res, err := execDocument(ctx, stmt, &primary[i])
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			stats.Primary++
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	err = a.insertAll(ctx, "documents", insertDocument, len(secondary), func(stmt *sql.Stmt, i int) error {
		res, err := execDocument(ctx, stmt, &secondary[i])
		if err != nil {
			logger.Debug("document_index %s skipped: %v", secondary[i].DocumentID, err)
			stats.SecondarySkipped++
			return nil
		}
		if n, _ := res.RowsAffected(); n > 0 {
			stats.SecondaryAdded++
		} else {
			stats.SecondarySkipped++
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("merging document_index: %w", err)
	}

	return stats, nil
}

func execDocument(ctx context.Context, stmt *sql.Stmt, d *domain.Document) (sql.Result, error) {
	return stmt.ExecContext(ctx,
		d.DocumentID, d.ArtifactID, d.BillID, d.DocumentType, d.SourceURL, d.Preview,
		d.FullText, d.ContentHash, d.ParserModule, d.ParserVersion, d.Confidence, d.NeedsReview)
}

// WriteSearchDocuments fills the full-text search index.
func (a *Archive) WriteSearchDocuments(ctx context.Context, docs []domain.SearchDocument) error {
	return a.insertAll(ctx, "search_index",
		`INSERT INTO search_index (
			artifact_id, bill_id, bill_label, title, committee_id, session,
			computed_state, action_text, document_text
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(docs), func(stmt *sql.Stmt, i int) error {
			d := &docs[i]
			_, err := stmt.ExecContext(ctx,
				d.ArtifactID, d.BillID, d.BillLabel, d.Title, d.CommitteeID, d.Session,
				d.ComputedState, d.ActionText, d.DocumentText)
			return err
		})
}
