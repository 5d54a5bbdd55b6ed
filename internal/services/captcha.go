package services

import (
	"fmt"
	"math/rand"
	"time"
)

// defaultOperandLimit keeps the arithmetic within single digits so the
// challenge filters bots without slowing people down.
const defaultOperandLimit = 10

// CaptchaService hands out small arithmetic problems for the register form,
// a cheap bot filter that runs before any call to the auth API.
type CaptchaService struct {
	rnd   *rand.Rand
	limit int
}

func NewCaptchaService() *CaptchaService {
	return NewCaptchaServiceWithLimit(defaultOperandLimit)
}

// NewCaptchaServiceWithLimit bounds both operands to [0, limit).
func NewCaptchaServiceWithLimit(limit int) *CaptchaService {
	if limit < 2 {
		limit = 2
	}
	return &CaptchaService{
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		limit: limit,
	}
}

// GenerateMathProblem returns a display string (e.g. "3 + 5") and the
// integer answer. The answer goes into the session, the question to the user.
func (s *CaptchaService) GenerateMathProblem() (string, int) {
	a, b := s.rnd.Intn(s.limit), s.rnd.Intn(s.limit)
	if s.rnd.Intn(2) == 0 {
		return fmt.Sprintf("%d + %d", a, b), a + b
	}
	// Subtraction never goes negative.
	if a < b {
		a, b = b, a
	}
	return fmt.Sprintf("%d - %d", a, b), a - b
}
