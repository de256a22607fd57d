package accessCode

import (
	"encoding/base64"
	"testing"

	"github.com/samborkent/uuidv7"
	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	encodedCode := GenerateCode("league-1", uuidv7.New().String())
	assert.NotEmpty(t, encodedCode, "Encoded code should not be empty")
	assert.NotContains(t, encodedCode, "/", "Encoded code must be usable in a URL path")
}

func TestDecode(t *testing.T) {
	leagueID := "0190a1b2-league"
	inviteID := uuidv7.New().String()
	encodedCode := GenerateCode(leagueID, inviteID)

	decodedLeague, decodedInvite, err := Decode(encodedCode)

	assert.Nil(t, err, "Should not have an error during decoding")
	assert.Equal(t, leagueID, decodedLeague, "Decoded league should match the original")
	assert.Equal(t, inviteID, decodedInvite, "Decoded invite should match the original")
}

func TestDecode_ErrorHandling(t *testing.T) {
	_, _, err := Decode("this is not a base64 string")
	assert.NotNil(t, err, "Expected an error for incorrect base64 string")

	_, _, err = Decode(base64.URLEncoding.EncodeToString([]byte("no-separator")))
	assert.NotNil(t, err, "Expected an error for a code without separator")

	_, _, err = Decode(base64.URLEncoding.EncodeToString([]byte("a|b|c")))
	assert.NotNil(t, err, "Expected an error for a code with too many parts")
}
