package authority

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"healthledger/internal/consent"
	"healthledger/internal/ledger"
	"healthledger/internal/registry"
	"healthledger/pkg/domain"
	dErrors "healthledger/pkg/domain-errors"
	auditmem "healthledger/pkg/platform/audit/store/memory"
)

const (
	alice   = domain.PersonID("alice-admin")
	bob     = domain.PersonID("dr-bob")
	charlie = domain.PersonID("charlie-patient")
	eve     = domain.PersonID("eve")
)

type ServiceSuite struct {
	suite.Suite
	ctx   context.Context
	svc   *Service
	audit *auditmem.InMemoryStore
	now   time.Time
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.audit = auditmem.NewInMemoryStore()

	svc, err := New(s.ctx, alice,
		registry.NewInMemoryStore(),
		consent.NewInMemoryStore(),
		ledger.NewInMemoryStore(),
		WithAuditStore(s.audit),
		WithClock(func() time.Time { return s.now }),
	)
	require.NoError(s.T(), err)
	s.svc = svc
}

// registerPair sets up the usual doctor and patient.
func (s *ServiceSuite) registerPair() {
	require.NoError(s.T(), s.svc.RegisterDoctor(s.ctx, alice, bob))
	require.NoError(s.T(), s.svc.RegisterPatient(s.ctx, alice, charlie))
}

func (s *ServiceSuite) TestNewSeedsRolelessAdmin() {
	role, exists := s.svc.RoleOf(s.ctx, alice)
	assert.True(s.T(), exists)
	assert.Equal(s.T(), domain.RoleNone, role)
	assert.Equal(s.T(), alice, s.svc.Admin())
}

func (s *ServiceSuite) TestNewRejectsEmptyAdmin() {
	_, err := New(s.ctx, "",
		registry.NewInMemoryStore(), consent.NewInMemoryStore(), ledger.NewInMemoryStore())
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeInvalidIdentity))
}

func (s *ServiceSuite) TestRegisterRequiresAdmin() {
	err := s.svc.RegisterDoctor(s.ctx, eve, bob)
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeUnauthorized))

	_, exists := s.svc.RoleOf(s.ctx, bob)
	assert.False(s.T(), exists)
}

func (s *ServiceSuite) TestRegisterRejectsEmptyIdentity() {
	err := s.svc.RegisterPatient(s.ctx, alice, "")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeInvalidIdentity))
}

func (s *ServiceSuite) TestRegisterOverwritesRole() {
	s.registerPair()

	require.NoError(s.T(), s.svc.RegisterPatient(s.ctx, alice, bob))
	role, exists := s.svc.RoleOf(s.ctx, bob)
	assert.True(s.T(), exists)
	assert.Equal(s.T(), domain.RolePatient, role)
}

func (s *ServiceSuite) TestGrantRequiresPatientCaller() {
	s.registerPair()

	// A doctor cannot grant.
	err := s.svc.Grant(s.ctx, bob, bob)
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeUnauthorized))

	// Neither can an unregistered identity or the admin.
	err = s.svc.Grant(s.ctx, eve, bob)
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeUnauthorized))
	err = s.svc.Grant(s.ctx, alice, bob)
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestGrantRequiresRegisteredDoctor() {
	s.registerPair()

	err := s.svc.Grant(s.ctx, charlie, eve)
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeInvalidCounterparty))

	// A patient is not a valid grant target either.
	require.NoError(s.T(), s.svc.RegisterPatient(s.ctx, alice, "dave"))
	err = s.svc.Grant(s.ctx, charlie, "dave")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeInvalidCounterparty))
}

func (s *ServiceSuite) TestGrantIsIdempotent() {
	s.registerPair()

	require.NoError(s.T(), s.svc.Grant(s.ctx, charlie, bob))
	require.NoError(s.T(), s.svc.Grant(s.ctx, charlie, bob))

	granted, err := s.svc.IsGranted(s.ctx, charlie, bob)
	require.NoError(s.T(), err)
	assert.True(s.T(), granted)

	// One revoke is enough to flip a doubly-granted pair back.
	require.NoError(s.T(), s.svc.Revoke(s.ctx, charlie, bob))
	granted, err = s.svc.IsGranted(s.ctx, charlie, bob)
	require.NoError(s.T(), err)
	assert.False(s.T(), granted)
}

func (s *ServiceSuite) TestRevokeWithoutGrant() {
	s.registerPair()

	err := s.svc.Revoke(s.ctx, charlie, bob)
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeNotGranted))

	// Revoking twice fails the second time.
	require.NoError(s.T(), s.svc.Grant(s.ctx, charlie, bob))
	require.NoError(s.T(), s.svc.Revoke(s.ctx, charlie, bob))
	err = s.svc.Revoke(s.ctx, charlie, bob)
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeNotGranted))
}

func (s *ServiceSuite) TestAddRecordPreconditionOrder() {
	s.registerPair()

	// 1. Caller must be a doctor.
	_, err := s.svc.AddRecord(s.ctx, charlie, charlie, "h1")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeUnauthorized))
	_, err = s.svc.AddRecord(s.ctx, eve, charlie, "h1")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeUnauthorized))

	// 2. Target must be a patient, checked before consent.
	_, err = s.svc.AddRecord(s.ctx, bob, eve, "h1")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeInvalidCounterparty))

	// 3. Consent is checked before the replay set.
	_, err = s.svc.AddRecord(s.ctx, bob, charlie, "h1")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeAccessDenied))

	// 4. Replay is the last gate.
	require.NoError(s.T(), s.svc.Grant(s.ctx, charlie, bob))
	id, err := s.svc.AddRecord(s.ctx, bob, charlie, "h1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), id)

	_, err = s.svc.AddRecord(s.ctx, bob, charlie, "h1")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeReplayDetected))
}

func (s *ServiceSuite) TestReplayProtectionIsGlobalAndPermanent() {
	s.registerPair()
	require.NoError(s.T(), s.svc.RegisterDoctor(s.ctx, alice, "dr-erin"))
	require.NoError(s.T(), s.svc.RegisterPatient(s.ctx, alice, "dave"))
	require.NoError(s.T(), s.svc.Grant(s.ctx, charlie, bob))
	require.NoError(s.T(), s.svc.Grant(s.ctx, "dave", "dr-erin"))

	_, err := s.svc.AddRecord(s.ctx, bob, charlie, "h1")
	require.NoError(s.T(), err)

	// A different, fully authorized pair still cannot reuse the fingerprint.
	_, err = s.svc.AddRecord(s.ctx, "dr-erin", "dave", "h1")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeReplayDetected))

	// Role and grant churn does not reopen the fingerprint.
	require.NoError(s.T(), s.svc.Revoke(s.ctx, charlie, bob))
	require.NoError(s.T(), s.svc.Grant(s.ctx, charlie, bob))
	_, err = s.svc.AddRecord(s.ctx, bob, charlie, "h1")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeReplayDetected))
}

func (s *ServiceSuite) TestRevokedGrantBlocksRetroactively() {
	s.registerPair()
	require.NoError(s.T(), s.svc.Grant(s.ctx, charlie, bob))

	_, err := s.svc.AddRecord(s.ctx, bob, charlie, "h1")
	require.NoError(s.T(), err)

	// A successful add never caches the consent check.
	require.NoError(s.T(), s.svc.Revoke(s.ctx, charlie, bob))
	_, err = s.svc.AddRecord(s.ctx, bob, charlie, "h2")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeAccessDenied))
}

func (s *ServiceSuite) TestAddRecordAssignsDenseIDsAndTimestamps() {
	s.registerPair()
	require.NoError(s.T(), s.svc.Grant(s.ctx, charlie, bob))

	first, err := s.svc.AddRecord(s.ctx, bob, charlie, "h1")
	require.NoError(s.T(), err)
	second, err := s.svc.AddRecord(s.ctx, bob, charlie, "h2")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), first)
	assert.Equal(s.T(), int64(1), second)

	rec, err := s.svc.Record(s.ctx, first)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), charlie, rec.Patient)
	assert.Equal(s.T(), bob, rec.Doctor)
	assert.Equal(s.T(), domain.Fingerprint("h1"), rec.Fingerprint)
	assert.Equal(s.T(), s.now, rec.CreatedAt)
}

func (s *ServiceSuite) TestRecordNotFound() {
	_, err := s.svc.Record(s.ctx, 42)
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestTransferByNonAdmin() {
	err := s.svc.Transfer(s.ctx, eve, eve)
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeUnauthorized))
	assert.Equal(s.T(), alice, s.svc.Admin())
}

func (s *ServiceSuite) TestTransferRejectsEmptyIdentity() {
	err := s.svc.Transfer(s.ctx, alice, "")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeInvalidIdentity))
	assert.Equal(s.T(), alice, s.svc.Admin())
}

func (s *ServiceSuite) TestTransferNeutralizesOutgoingAdmin() {
	require.NoError(s.T(), s.svc.Transfer(s.ctx, alice, "trent"))
	assert.Equal(s.T(), domain.PersonID("trent"), s.svc.Admin())

	// Outgoing admin exists with role None and has lost its authority.
	role, exists := s.svc.RoleOf(s.ctx, alice)
	assert.True(s.T(), exists)
	assert.Equal(s.T(), domain.RoleNone, role)
	err := s.svc.RegisterDoctor(s.ctx, alice, bob)
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeUnauthorized))

	// Incoming admin exists with role None and can operate.
	role, exists = s.svc.RoleOf(s.ctx, "trent")
	assert.True(s.T(), exists)
	assert.Equal(s.T(), domain.RoleNone, role)
	require.NoError(s.T(), s.svc.RegisterDoctor(s.ctx, "trent", bob))
}

func (s *ServiceSuite) TestTransferClearsClinicalRole() {
	s.registerPair()

	// A doctor displaced into the admin slot loses the Doctor role.
	require.NoError(s.T(), s.svc.Transfer(s.ctx, alice, bob))
	role, exists := s.svc.RoleOf(s.ctx, bob)
	assert.True(s.T(), exists)
	assert.Equal(s.T(), domain.RoleNone, role)

	// Transferring back strips it again on the way out.
	require.NoError(s.T(), s.svc.Transfer(s.ctx, bob, alice))
	role, _ = s.svc.RoleOf(s.ctx, bob)
	assert.Equal(s.T(), domain.RoleNone, role)
	assert.Equal(s.T(), alice, s.svc.Admin())
}

func (s *ServiceSuite) TestConcurrentAddsSameFingerprintOneWins() {
	s.registerPair()
	require.NoError(s.T(), s.svc.Grant(s.ctx, charlie, bob))

	const n = 32
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		replayed int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.AddRecord(s.ctx, bob, charlie, "contested")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case dErrors.Is(err, dErrors.CodeReplayDetected):
				replayed++
			}
		}()
	}
	wg.Wait()

	assert.Equal(s.T(), 1, accepted)
	assert.Equal(s.T(), n-1, replayed)
}

func (s *ServiceSuite) TestRecordsForPatientAccess() {
	s.registerPair()
	require.NoError(s.T(), s.svc.Grant(s.ctx, charlie, bob))
	_, err := s.svc.AddRecord(s.ctx, bob, charlie, "h1")
	require.NoError(s.T(), err)

	records, err := s.svc.RecordsForPatient(s.ctx, charlie, charlie)
	require.NoError(s.T(), err)
	assert.Len(s.T(), records, 1)

	records, err = s.svc.RecordsForPatient(s.ctx, alice, charlie)
	require.NoError(s.T(), err)
	assert.Len(s.T(), records, 1)

	_, err = s.svc.RecordsForPatient(s.ctx, bob, charlie)
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestAuditTrailCoversDenialsAndCommits() {
	s.registerPair()

	_, err := s.svc.AddRecord(s.ctx, bob, charlie, "h1")
	require.True(s.T(), dErrors.Is(err, dErrors.CodeAccessDenied))
	require.NoError(s.T(), s.svc.Grant(s.ctx, charlie, bob))
	_, err = s.svc.AddRecord(s.ctx, bob, charlie, "h1")
	require.NoError(s.T(), err)

	events, err := s.audit.ListRecent(s.ctx, 0)
	require.NoError(s.T(), err)
	// 2 registrations + 1 denied add + 1 grant + 1 commit.
	require.Len(s.T(), events, 5)

	denied := events[2]
	assert.Equal(s.T(), "denied", denied.Decision)
	assert.Equal(s.T(), string(dErrors.CodeAccessDenied), denied.Reason)

	committed := events[4]
	assert.Equal(s.T(), "allowed", committed.Decision)
	assert.Equal(s.T(), int64(0), committed.RecordID)
}

// TestEndToEndScenario replays the canonical consent story: a blocked
// pre-consent write, a grant, a successful commit, a blocked replay, a
// blocked privilege escalation, and a post-revocation denial.
func (s *ServiceSuite) TestEndToEndScenario() {
	require.NoError(s.T(), s.svc.RegisterDoctor(s.ctx, alice, bob))
	require.NoError(s.T(), s.svc.RegisterPatient(s.ctx, alice, charlie))

	// Write before consent is blocked.
	_, err := s.svc.AddRecord(s.ctx, bob, charlie, "hash-xray-001")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeAccessDenied))

	// Consent granted, write succeeds with id 0.
	require.NoError(s.T(), s.svc.Grant(s.ctx, charlie, bob))
	id, err := s.svc.AddRecord(s.ctx, bob, charlie, "hash-xray-001")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), id)

	// Replaying the exact same fingerprint is blocked.
	_, err = s.svc.AddRecord(s.ctx, bob, charlie, "hash-xray-001")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeReplayDetected))

	// Privilege escalation attempt is blocked.
	err = s.svc.Transfer(s.ctx, eve, eve)
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeUnauthorized))
	assert.Equal(s.T(), alice, s.svc.Admin())

	// After revocation, new writes are blocked again.
	require.NoError(s.T(), s.svc.Revoke(s.ctx, charlie, bob))
	_, err = s.svc.AddRecord(s.ctx, bob, charlie, "hash-blood-002")
	assert.True(s.T(), dErrors.Is(err, dErrors.CodeAccessDenied))
}

// TestIndependentInstances verifies the authority carries no process-wide
// state: two services over separate stores evolve independently.
func TestIndependentInstances(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, "admin-a",
		registry.NewInMemoryStore(), consent.NewInMemoryStore(), ledger.NewInMemoryStore())
	require.NoError(t, err)
	b, err := New(ctx, "admin-b",
		registry.NewInMemoryStore(), consent.NewInMemoryStore(), ledger.NewInMemoryStore())
	require.NoError(t, err)

	require.NoError(t, a.RegisterDoctor(ctx, "admin-a", "dr-bob"))
	require.NoError(t, a.RegisterPatient(ctx, "admin-a", "carol"))
	require.NoError(t, a.Grant(ctx, "carol", "dr-bob"))
	_, err = a.AddRecord(ctx, "dr-bob", "carol", "h1")
	require.NoError(t, err)

	// The same fingerprint is fresh in the other instance's ledger.
	require.NoError(t, b.RegisterDoctor(ctx, "admin-b", "dr-bob"))
	require.NoError(t, b.RegisterPatient(ctx, "admin-b", "carol"))
	require.NoError(t, b.Grant(ctx, "carol", "dr-bob"))
	id, err := b.AddRecord(ctx, "dr-bob", "carol", "h1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}
