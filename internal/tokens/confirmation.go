package tokens

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"titlehub/internal/http-api/models"
)

// sigLength is the number of hex characters kept from the HMAC digest.
const sigLength = 32

// ConfirmationGenerator produces single-use confirmation codes for the email
// sign-in flow. A code is an HMAC over the user's identity state (id, email,
// role, last login) plus an issue timestamp, so it expires after TTL and
// stops validating as soon as any of those fields change. Stamping last_login
// on a successful exchange is what makes a code single-use.
type ConfirmationGenerator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewConfirmationGenerator(secret string, ttl time.Duration) *ConfirmationGenerator {
	return &ConfirmationGenerator{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate returns a confirmation code for the user's current state.
func (g *ConfirmationGenerator) Generate(user *models.User) string {
	ts := g.now().Unix()
	return strconv.FormatInt(ts, 36) + "-" + g.sign(user, ts)
}

// Check reports whether code is valid for the user's current state and has
// not passed its expiry window.
func (g *ConfirmationGenerator) Check(user *models.User, code string) bool {
	tsPart, _, found := strings.Cut(code, "-")
	if !found {
		return false
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}

	issued := time.Unix(ts, 0)
	now := g.now()
	if issued.After(now) || now.Sub(issued) > g.ttl {
		return false
	}

	expected := strconv.FormatInt(ts, 36) + "-" + g.sign(user, ts)
	return hmac.Equal([]byte(code), []byte(expected))
}

func (g *ConfirmationGenerator) sign(user *models.User, ts int64) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(userState(user)))
	mac.Write([]byte("|"))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	return hex.EncodeToString(mac.Sum(nil))[:sigLength]
}

// userState folds the fields whose change must invalidate outstanding codes.
func userState(user *models.User) string {
	lastLogin := ""
	if user.LastLogin != nil {
		lastLogin = strconv.FormatInt(user.LastLogin.Unix(), 10)
	}
	return strings.Join([]string{user.ID, user.Email, user.Role, lastLogin}, "|")
}
