package accessCode

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// GenerateCode builds the opaque code put in invite links. It is URL safe so
// it can travel as a path segment.
func GenerateCode(leagueID, inviteID string) string {
	code := fmt.Sprintf("%s|%s", leagueID, inviteID)
	return base64.URLEncoding.EncodeToString([]byte(code))
}

func Decode(code string) (leagueID, inviteID string, err error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(code)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode access code -> %w", err)
	}
	res := strings.Split(string(decodedBytes), "|")
	if len(res) != 2 || res[0] == "" || res[1] == "" {
		return "", "", fmt.Errorf("not correct format")
	}
	return res[0], res[1], nil
}
