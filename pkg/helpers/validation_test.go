package helpers

import (
	"testing"
)

type answerPayload struct {
	Answer string `json:"answer" validate:"required,quest_answer"`
	UserID string `json:"user_id" validate:"omitempty,user_ref"`
}

type regionPayload struct {
	City string `form:"city" validate:"required,region_name"`
}

func TestQuestAnswerValidation(t *testing.T) {
	cv := NewCustomValidator()

	valid := []string{"A", "b", "C", "d", " a "}
	for _, answer := range valid {
		if err := cv.Validate(answerPayload{Answer: answer}); err != nil {
			t.Errorf("Expected %q to be a valid answer: %v", answer, err)
		}
	}

	invalid := []string{"", "E", "ab", "1", "hello"}
	for _, answer := range invalid {
		if err := cv.Validate(answerPayload{Answer: answer}); err == nil {
			t.Errorf("Expected %q to be rejected", answer)
		}
	}
}

func TestUserRefValidation(t *testing.T) {
	cv := NewCustomValidator()

	valid := []string{"kakao-1001", "user_42", "a.b:c", ""}
	for _, userID := range valid {
		if err := cv.Validate(answerPayload{Answer: "A", UserID: userID}); err != nil {
			t.Errorf("Expected %q to be a valid user ref: %v", userID, err)
		}
	}

	invalid := []string{"bad!id", "has space", "한글아이디"}
	for _, userID := range invalid {
		if err := cv.Validate(answerPayload{Answer: "A", UserID: userID}); err == nil {
			t.Errorf("Expected %q to be rejected", userID)
		}
	}
}

func TestRegionNameValidation(t *testing.T) {
	cv := NewCustomValidator()

	valid := []string{"Jeju", "Pyoseon-ri", "Aewol"}
	for _, name := range valid {
		if err := cv.Validate(regionPayload{City: name}); err != nil {
			t.Errorf("Expected %q to be a valid region name: %v", name, err)
		}
	}

	invalid := []string{"", "a/b", "..", `back\slash`}
	for _, name := range invalid {
		if err := cv.Validate(regionPayload{City: name}); err == nil {
			t.Errorf("Expected %q to be rejected", name)
		}
	}
}
