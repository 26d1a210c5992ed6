package signature

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/opsio/esignpro-backend/internal/model"
	"github.com/opsio/esignpro-backend/internal/repository"
	"github.com/opsio/esignpro-backend/pkg/logger"
	"github.com/opsio/esignpro-backend/pkg/metrics"
	"github.com/opsio/esignpro-backend/pkg/retry"
)

// ReconcileService promotes case-scoped signatures into reusable
// client-scoped records. It is an administrative batch repair, not a live
// state machine: re-running it is a no-op for already-reconciled clients.
type ReconcileService struct {
	signatures *repository.SignatureRepository
	retryCfg   retry.Config
}

func NewReconcileService(signatures *repository.SignatureRepository) *ReconcileService {
	return &ReconcileService{
		signatures: signatures,
		retryCfg:   retry.DefaultConfig,
	}
}

// ClientResult is the outcome for one client
type ClientResult struct {
	ClientID    string `json:"client_id"`
	Promoted    bool   `json:"promoted"`
	Skipped     bool   `json:"skipped"`
	SignatureID string `json:"signature_id,omitempty"`
	CaseNumber  string `json:"case_number,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Report aggregates one batch run
type Report struct {
	ClientsSeen int            `json:"clients_seen"`
	Promoted    int            `json:"promoted"`
	Skipped     int            `json:"skipped"`
	Failed      int            `json:"failed"`
	Results     []ClientResult `json:"results"`
}

// Run executes one reconciliation pass. A failure for one client never
// aborts the others; per-client outcomes are collected into the report.
func (s *ReconcileService) Run(ctx context.Context) (*Report, error) {
	rows, err := s.signatures.ListOwnedCaseSignatures()
	if err != nil {
		return nil, err
	}

	byClient := make(map[string][]repository.OwnedCaseSignature)
	for _, row := range rows {
		if row.ClientID == "" {
			logger.Warnf("Case signature %s has no owning client; skipping", row.ID)
			continue
		}
		byClient[row.ClientID] = append(byClient[row.ClientID], row)
	}

	// deterministic processing order for the report
	clientIDs := make([]string, 0, len(byClient))
	for clientID := range byClient {
		clientIDs = append(clientIDs, clientID)
	}
	sort.Strings(clientIDs)

	report := &Report{ClientsSeen: len(clientIDs)}
	for _, clientID := range clientIDs {
		result := s.reconcileClient(ctx, clientID, byClient[clientID])
		report.Results = append(report.Results, result)
		switch {
		case result.Error != "":
			report.Failed++
			metrics.ReconciliationFailures.Inc()
		case result.Skipped:
			report.Skipped++
		case result.Promoted:
			report.Promoted++
			metrics.SignaturesPromoted.Inc()
		}
	}

	logger.Infof("Signature reconciliation finished: %d clients, %d promoted, %d skipped, %d failed",
		report.ClientsSeen, report.Promoted, report.Skipped, report.Failed)
	return report, nil
}

func (s *ReconcileService) reconcileClient(ctx context.Context, clientID string, sigs []repository.OwnedCaseSignature) ClientResult {
	result := ClientResult{ClientID: clientID}

	// idempotence: a client that already owns an active signature is done
	hasActive, err := s.signatures.HasActiveClientSignature(clientID)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if hasActive {
		result.Skipped = true
		return result
	}

	newest := mostRecent(sigs)
	promoted := &model.ClientSignature{
		ClientID:      clientID,
		SignatureData: newest.SignatureData,
		IsActive:      true,
		IsDefault:     true,
		SignedAt:      newest.SignedAt,
		IPAddress:     newest.IPAddress,
		UserAgent:     newest.UserAgent,
		Hash:          newest.Hash,
	}
	metadata, _ := json.Marshal(map[string]string{
		"source_case_number":  newest.CaseNumber,
		"source_signature_id": newest.ID,
		"promoted_at":         time.Now().UTC().Format(time.RFC3339),
	})
	promoted.Metadata = metadata

	if err := retry.Do(ctx, s.retryCfg, func() error {
		return s.signatures.CreateClientSignature(promoted)
	}); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Promoted = true
	result.SignatureID = promoted.ID
	result.CaseNumber = newest.CaseNumber
	return result
}

// mostRecent picks the signature with the latest signed-at timestamp,
// falling back to created-at for unsigned rows
func mostRecent(sigs []repository.OwnedCaseSignature) repository.OwnedCaseSignature {
	best := sigs[0]
	for _, candidate := range sigs[1:] {
		if effectiveTime(candidate).After(effectiveTime(best)) {
			best = candidate
		}
	}
	return best
}

func effectiveTime(sig repository.OwnedCaseSignature) time.Time {
	if sig.SignedAt != nil {
		return *sig.SignedAt
	}
	return sig.CreatedAt
}

// ReactivateAll flips every inactive signature of a client back to active
func (s *ReconcileService) ReactivateAll(clientID string) (int64, error) {
	count, err := s.signatures.ReactivateAll(clientID)
	if err != nil {
		return 0, err
	}
	logger.Infof("Reactivated %d signatures for client %s", count, clientID)
	return count, nil
}

// SetDefault designates one active signature as the client's default,
// clearing any prior default first
func (s *ReconcileService) SetDefault(clientID, signatureID string) error {
	if err := s.signatures.SetDefault(clientID, signatureID); err != nil {
		return err
	}
	logger.Infof("Signature %s is now the default for client %s", signatureID, clientID)
	return nil
}
