package leagues

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpgradeParticipants(t *testing.T) {
	names := func(_ context.Context, email string) string {
		if email == "a@x.com" {
			return "Alice"
		}
		return ""
	}
	raw := []interface{}{
		"a@x.com",
		"b@x.com",
		map[string]interface{}{"email": "c@x.com", "league_user_name": "Carol"},
	}

	out, emails, changed := upgradeParticipants(context.Background(), raw, names)

	assert.True(t, changed)
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, emails)
	assert.Equal(t, []interface{}{
		map[string]interface{}{"email": "a@x.com", "league_user_name": "Alice"},
		map[string]interface{}{"email": "b@x.com", "league_user_name": "b@x.com"},
		map[string]interface{}{"email": "c@x.com", "league_user_name": "Carol"},
	}, out)

	_, _, changed = upgradeParticipants(context.Background(), out, names)
	assert.False(t, changed, "already migrated leagues are skipped")
}

func TestDowngradeParticipants(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"email": "a@x.com", "league_user_name": "Alice"},
		"b@x.com",
	}

	out, emails, changed := downgradeParticipants(raw)

	assert.True(t, changed)
	assert.Equal(t, []interface{}{"a@x.com", "b@x.com"}, out)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, emails)

	_, _, changed = downgradeParticipants(out)
	assert.False(t, changed)
}

func TestEmailsDiffer(t *testing.T) {
	emails := []string{"a@x.com", "b@x.com"}

	assert.True(t, emailsDiffer(nil, emails), "missing field is backfilled")
	assert.True(t, emailsDiffer([]interface{}{"a@x.com"}, emails))
	assert.True(t, emailsDiffer([]interface{}{"b@x.com", "a@x.com"}, emails))
	assert.False(t, emailsDiffer([]interface{}{"a@x.com", "b@x.com"}, emails))
}
