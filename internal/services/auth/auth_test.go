package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("секретный-пароль")
	require.NoError(t, err)
	require.NotEqual(t, "секретный-пароль", hash)

	require.True(t, CheckPasswordHash("секретный-пароль", hash))
	require.False(t, CheckPasswordHash("другой", hash))
}

// подписываем данные так же, как это делает Telegram
func signTelegramData(botToken string, data map[string]string) string {
	keys := []string{"auth_date", "first_name", "id", "username"}
	checkString := ""
	for _, k := range keys {
		if v, ok := data[k]; ok && v != "" {
			if checkString != "" {
				checkString += "\n"
			}
			checkString += fmt.Sprintf("%s=%s", k, v)
		}
	}
	secretKey := sha256.Sum256([]byte(botToken))
	h := hmac.New(sha256.New, secretKey[:])
	h.Write([]byte(checkString))
	return hex.EncodeToString(h.Sum(nil))
}

func TestTelegramAuthValidation(t *testing.T) {
	svc := NewTelegramAuthService("test-bot-token")

	data := map[string]string{
		"id":         "12345",
		"username":   "petrov",
		"first_name": "Пётр",
		"auth_date":  strconv.FormatInt(time.Now().Unix(), 10),
	}
	data["hash"] = signTelegramData("test-bot-token", data)

	validated, err := svc.ValidateAndExtract(data)
	require.NoError(t, err)
	require.Equal(t, "12345", validated["id"])
}

func TestTelegramAuthRejectsBadHash(t *testing.T) {
	svc := NewTelegramAuthService("test-bot-token")

	data := map[string]string{
		"id":        "12345",
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"hash":      "deadbeef",
	}
	_, err := svc.ValidateAndExtract(data)
	require.Error(t, err)
}

func TestTelegramAuthRejectsStaleData(t *testing.T) {
	svc := NewTelegramAuthService("test-bot-token")

	data := map[string]string{
		"id":        "12345",
		"auth_date": strconv.FormatInt(time.Now().Add(-48*time.Hour).Unix(), 10),
	}
	data["hash"] = signTelegramData("test-bot-token", data)

	_, err := svc.ValidateAndExtract(data)
	require.ErrorContains(t, err, "expired")
}

func TestTelegramAuthRequiresFields(t *testing.T) {
	svc := NewTelegramAuthService("test-bot-token")

	_, err := svc.ValidateAndExtract(map[string]string{"id": "12345"})
	require.ErrorContains(t, err, "hash")

	_, err = svc.ValidateAndExtract(map[string]string{"hash": "abc"})
	require.ErrorContains(t, err, "id")
}
