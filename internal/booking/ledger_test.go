package booking_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/serenelab/wellspring/internal/booking"
	"github.com/serenelab/wellspring/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_AppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.json")
	ledger := booking.New(path)

	first := domain.Booking{
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Name:      "Asha",
		Contact:   "asha@example.org",
		Clinic:    "City Care Clinic",
		Date:      "2026-03-05",
		Time:      "14:30",
	}
	require.NoError(t, ledger.Append(first))
	require.NoError(t, ledger.Append(domain.Booking{Name: "Ravi", Clinic: "Green Cross"}))

	got := ledger.All()
	require.Len(t, got, 2)
	assert.Equal(t, "Asha", got[0].Name)
	assert.Equal(t, "City Care Clinic", got[0].Clinic)
	assert.Equal(t, "Ravi", got[1].Name)

	// The ledger only ever grows; a reopened ledger sees the same records.
	reopened := booking.New(path)
	assert.Len(t, reopened.All(), 2)
}

func TestLedger_CorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	ledger := booking.New(path)
	assert.Empty(t, ledger.All())

	// Appending over a corrupt file starts a fresh list rather than failing.
	require.NoError(t, ledger.Append(domain.Booking{Name: "Asha"}))
	assert.Len(t, ledger.All(), 1)
}
