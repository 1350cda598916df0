package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalStatus(t *testing.T) {
	t.Parallel()

	t.Run("case and separator variants canonicalize equal", func(t *testing.T) {
		variants := []string{"In_Progress", "in-progress", "In Progress", "IN PROGRESS", "  in_progress "}
		for _, v := range variants {
			got, err := CanonicalStatus(v)
			require.NoError(t, err, "variant %q", v)
			require.Equal(t, StatusInProgress, got, "variant %q", v)
		}
	})

	t.Run("every member of the domain is accepted", func(t *testing.T) {
		for _, s := range []Status{
			StatusPending, StatusInProgress, StatusSuggested,
			StatusInterviewPending, StatusInterviewed, StatusAssigned, StatusRejected,
		} {
			got, err := CanonicalStatus(string(s))
			require.NoError(t, err)
			require.Equal(t, s, got)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		for _, v := range []string{"", "hired", "in  limbo", "pending2"} {
			_, err := CanonicalStatus(v)
			require.ErrorIs(t, err, ErrUnknownStatus, "input %q", v)
		}
	})

	t.Run("internal whitespace collapses", func(t *testing.T) {
		got, err := CanonicalStatus("interview   pending")
		require.NoError(t, err)
		require.Equal(t, StatusInterviewPending, got)
	})
}
