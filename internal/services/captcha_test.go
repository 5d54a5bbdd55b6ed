package services

import (
	"fmt"
	"strings"
	"testing"
)

func TestGenerateMathProblem(t *testing.T) {
	s := NewCaptchaService()
	for i := 0; i < 100; i++ {
		question, answer := s.GenerateMathProblem()
		if answer < 0 {
			t.Fatalf("negative answer %d for %q", answer, question)
		}

		var a, b int
		var op string
		if _, err := fmt.Sscanf(question, "%d %s %d", &a, &op, &b); err != nil {
			t.Fatalf("unparseable question %q: %v", question, err)
		}
		switch op {
		case "+":
			if a+b != answer {
				t.Fatalf("%q: want %d, got %d", question, a+b, answer)
			}
		case "-":
			if a-b != answer {
				t.Fatalf("%q: want %d, got %d", question, a-b, answer)
			}
		default:
			t.Fatalf("unexpected operator in %q", question)
		}
	}
}

func TestGenerateMathProblemOperandLimit(t *testing.T) {
	s := NewCaptchaServiceWithLimit(5)
	for i := 0; i < 100; i++ {
		question, _ := s.GenerateMathProblem()
		var a, b int
		var op string
		if _, err := fmt.Sscanf(question, "%d %s %d", &a, &op, &b); err != nil {
			t.Fatalf("unparseable question %q: %v", question, err)
		}
		if a >= 5 || b >= 5 {
			t.Fatalf("operands out of range in %q", question)
		}
	}

	// Degenerate limits are clamped rather than panicking in rand.Intn.
	s = NewCaptchaServiceWithLimit(0)
	if question, _ := s.GenerateMathProblem(); question == "" {
		t.Fatal("empty question")
	}
}

func TestGenerateMathProblemFormat(t *testing.T) {
	s := NewCaptchaService()
	question, _ := s.GenerateMathProblem()
	if !strings.Contains(question, "+") && !strings.Contains(question, "-") {
		t.Fatalf("question %q has no operator", question)
	}
}
