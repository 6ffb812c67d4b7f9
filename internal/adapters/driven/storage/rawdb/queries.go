package rawdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

// ListBillSources reads every bill artifact with its snapshot, if any.
func (s *Store) ListBillSources(ctx context.Context) ([]domain.BillSource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			ba.artifact_id,
			ba.bill_id,
			CAST(ba.session AS TEXT),
			ba.committee_id,
			CAST(ba.created_at AS TEXT),
			CAST(ba.bill_metadata AS TEXT),
			s.computed_state,
			s.computed_reason,
			CAST(s.computation_metadata AS TEXT)
		FROM bill_artifacts ba
		LEFT JOIN artifact_snapshots s USING (artifact_id)
	`)
	if err != nil {
		return nil, fmt.Errorf("querying bill_artifacts: %w", err)
	}
	defer rows.Close()

	var bills []domain.BillSource
	for rows.Next() {
		var (
			b                                  domain.BillSource
			session, committee, created, meta  sql.NullString
			state, reason, computationMetadata sql.NullString
		)
		if err := rows.Scan(&b.ArtifactID, &b.BillID, &session, &committee, &created, &meta,
			&state, &reason, &computationMetadata); err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}
		b.Session = nullString(session)
		b.CommitteeID = nullString(committee)
		b.CreatedAt = nullString(created)
		b.BillMetadata = nullString(meta)
		b.ComputedState = nullString(state)
		b.ComputedReason = nullString(reason)
		b.ComputationMetadata = nullString(computationMetadata)
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// ListTimelineActions reads every timeline action ordered by action date.
func (s *Store) ListTimelineActions(ctx context.Context) ([]domain.RawTimelineAction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT action_id, artifact_id, CAST(action_date AS TEXT), branch,
		       action_type, category, raw_text, CAST(extracted_data AS TEXT), confidence
		FROM timeline_actions
		ORDER BY action_date
	`)
	if err != nil {
		return nil, fmt.Errorf("querying timeline_actions: %w", err)
	}
	defer rows.Close()

	var actions []domain.RawTimelineAction
	for rows.Next() {
		var (
			a                                  domain.RawTimelineAction
			artifact, date, branch, actionType sql.NullString
			category, rawText, extracted       sql.NullString
			confidence                         sql.NullFloat64
		)
		if err := rows.Scan(&a.ActionID, &artifact, &date, &branch, &actionType,
			&category, &rawText, &extracted, &confidence); err != nil {
			return nil, fmt.Errorf("scanning timeline action: %w", err)
		}
		a.ArtifactID = nullString(artifact)
		a.ActionDate = nullString(date)
		a.Branch = nullString(branch)
		a.ActionType = nullString(actionType)
		a.Category = nullString(category)
		a.RawText = nullString(rawText)
		a.ExtractedData = nullString(extracted)
		a.Confidence = nullFloat(confidence)
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// ListHearings reads every hearing record.
func (s *Store) ListHearings(ctx context.Context) ([]domain.RawHearing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, artifact_id, hearing_id, CAST(hearing_date AS TEXT),
		       hearing_url, CAST(announcement_date AS TEXT), CAST(scheduled_hearing_date AS TEXT)
		FROM hearing_records
	`)
	if err != nil {
		return nil, fmt.Errorf("querying hearing_records: %w", err)
	}
	defer rows.Close()

	var hearings []domain.RawHearing
	for rows.Next() {
		var (
			h                                  domain.RawHearing
			artifact, hearingID, date, hearURL sql.NullString
			announced, scheduled               sql.NullString
		)
		if err := rows.Scan(&h.RecordID, &artifact, &hearingID, &date, &hearURL, &announced, &scheduled); err != nil {
			return nil, fmt.Errorf("scanning hearing record: %w", err)
		}
		h.ArtifactID = nullString(artifact)
		h.HearingID = nullString(hearingID)
		h.HearingDate = nullString(date)
		h.HearingURL = nullString(hearURL)
		h.AnnouncementDate = nullString(announced)
		h.ScheduledHearingDate = nullString(scheduled)
		hearings = append(hearings, h)
	}
	return hearings, rows.Err()
}

// ListSnapshotMetadata reads the computation metadata of every snapshot.
func (s *Store) ListSnapshotMetadata(ctx context.Context) ([]domain.SnapshotMetadata, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT artifact_id, CAST(computation_metadata AS TEXT) FROM artifact_snapshots
	`)
	if err != nil {
		return nil, fmt.Errorf("querying artifact_snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.SnapshotMetadata
	for rows.Next() {
		var (
			m    domain.SnapshotMetadata
			meta sql.NullString
		)
		if err := rows.Scan(&m.ArtifactID, &meta); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		m.ComputationMetadata = nullString(meta)
		snapshots = append(snapshots, m)
	}
	return snapshots, rows.Err()
}

// ListArtifactDocuments reads documents linked to a known bill artifact,
// with the bill code taken from the artifact.
func (s *Store) ListArtifactDocuments(ctx context.Context) ([]domain.Document, error) {
	return s.listDocuments(ctx, "document_artifacts", `
		SELECT da.document_id, da.artifact_id, ba.bill_id,
		       da.document_type, da.source_url,
		       da.content_preview, da.full_content,
		       da.content_hash, da.parser_module, CAST(da.parser_version AS TEXT),
		       da.confidence, da.needs_review
		FROM document_artifacts da
		JOIN bill_artifacts ba USING (artifact_id)
	`)
}

// ListIndexDocuments reads the document index. These rows carry no
// artifact id or parser version.
func (s *Store) ListIndexDocuments(ctx context.Context) ([]domain.Document, error) {
	return s.listDocuments(ctx, "document_index", `
		SELECT reference_id, CAST(NULL AS TEXT), bill_id,
		       document_type, source_url,
		       preview, full_text,
		       content_hash, parser_module, CAST(NULL AS TEXT),
		       confidence, needs_review
		FROM document_index
	`)
}

func (s *Store) listDocuments(ctx context.Context, table, query string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var (
			d                                        domain.Document
			artifact, billID, docType, sourceURL     sql.NullString
			preview, fullText, hash, module, version sql.NullString
			confidence                               sql.NullFloat64
			needsReview                              sql.NullBool
		)
		if err := rows.Scan(&d.DocumentID, &artifact, &billID, &docType, &sourceURL,
			&preview, &fullText, &hash, &module, &version, &confidence, &needsReview); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		d.ArtifactID = nullString(artifact)
		d.BillID = nullString(billID)
		d.DocumentType = nullString(docType)
		d.SourceURL = nullString(sourceURL)
		d.Preview = nullString(preview)
		d.FullText = nullString(fullText)
		d.ContentHash = nullString(hash)
		d.ParserModule = nullString(module)
		d.ParserVersion = nullString(version)
		d.Confidence = nullFloat(confidence)
		if needsReview.Valid {
			d.NeedsReview = &needsReview.Bool
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func nullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}
