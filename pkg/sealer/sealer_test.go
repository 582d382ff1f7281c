package sealer

import "testing"

func TestCancelTokenRoundTrip(t *testing.T) {
	token, err := CreateCancelToken("65f1c0ffee0000000000aa01", "X7KQ2M9PLR")
	if err != nil {
		t.Fatalf("CreateCancelToken: %v", err)
	}

	bookingID, code, err := ParseCancelToken(token)
	if err != nil {
		t.Fatalf("ParseCancelToken: %v", err)
	}
	if bookingID != "65f1c0ffee0000000000aa01" {
		t.Errorf("booking ID = %q", bookingID)
	}
	if code != "X7KQ2M9PLR" {
		t.Errorf("confirmation code = %q", code)
	}
}

func TestParseCancelTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "abc", "!!!not-base64!!!", "QUFBQUFBQUFBQUFBQUFBQQ"} {
		if _, _, err := ParseCancelToken(token); err == nil {
			t.Errorf("expected error for token %q", token)
		}
	}
}

func TestTokensAreUnique(t *testing.T) {
	// Random nonce per seal: the same payload must not produce the same token.
	t1, err := CreateCancelToken("id", "code")
	if err != nil {
		t.Fatal(err)
	}
	t2, err := CreateCancelToken("id", "code")
	if err != nil {
		t.Fatal(err)
	}
	if t1 == t2 {
		t.Error("two seals of the same payload produced identical tokens")
	}
}
