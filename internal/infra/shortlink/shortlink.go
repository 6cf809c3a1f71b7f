// Package shortlink encodes recipe ids as short, reversible codes for /s/{code}.
package shortlink

import (
	"errors"
	"fmt"

	"github.com/sqids/sqids-go"
)

// Defaults used when SHORTLINK_ALPHABET / SHORTLINK_MIN_LENGTH are unset.
const (
	DefaultAlphabet  = "k3G7QAe51FCsPW92uEOyq4Bg6Sp8YzVTmnU0liwDdHXLajZrfxNhobJIRcMvKt"
	DefaultMinLength = 6
)

// ErrInvalidCode is returned when a code does not decode to exactly one id.
var ErrInvalidCode = errors.New("invalid short link code")

// Codec converts recipe ids to codes and back. Safe for concurrent use.
type Codec struct {
	s *sqids.Sqids
}

// New builds a codec. alphabet must contain at least 3 unique characters.
func New(alphabet string, minLength int) (*Codec, error) {
	if minLength < 0 || minLength > 255 {
		return nil, fmt.Errorf("shortlink: min length %d out of range", minLength)
	}
	s, err := sqids.New(sqids.Options{
		Alphabet:  alphabet,
		MinLength: uint8(minLength),
	})
	if err != nil {
		return nil, fmt.Errorf("shortlink: %w", err)
	}
	return &Codec{s: s}, nil
}

// Encode returns the code for id. id must be positive.
func (c *Codec) Encode(id int64) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("shortlink: id must be positive, got %d", id)
	}
	code, err := c.s.Encode([]uint64{uint64(id)})
	if err != nil {
		return "", fmt.Errorf("shortlink: encode %d: %w", id, err)
	}
	return code, nil
}

// Decode returns the id behind code.
func (c *Codec) Decode(code string) (int64, error) {
	nums := c.s.Decode(code)
	if len(nums) != 1 || nums[0] == 0 || nums[0] > 1<<63-1 {
		return 0, ErrInvalidCode
	}
	// 同じ id に複数のコードが対応しないよう、再エンコードして一致を確認する
	canonical, err := c.s.Encode(nums)
	if err != nil || canonical != code {
		return 0, ErrInvalidCode
	}
	return int64(nums[0]), nil
}
