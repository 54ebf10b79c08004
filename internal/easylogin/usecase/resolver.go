package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/entity"
)

// candidateLimit bounds the name lookup so a common name cannot trigger an
// unbounded scan.
const candidateLimit int32 = 10

// resolve maps a claimed (name, last 4 phone digits) pair to at most one
// eligible member. No match, multiple matches and an ineligible match all
// collapse into the same negative outcome so the caller cannot distinguish
// them (enumeration resistance).
func (s *Usecase) resolve(ctx context.Context, name, phoneLast4 string) (_ *entity.Member, ok bool) {
	candidates, err := s.repoDB.GetMembersByName(ctx, strings.TrimSpace(name), candidateLimit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get members by name", "error", err)
		return nil, false
	}

	var matched *entity.Member
	for i := range candidates {
		if lastFourDigits(candidates[i].Phone) != phoneLast4 {
			continue
		}
		if matched != nil {
			slog.WarnContext(ctx, "easy login identity is ambiguous")
			return nil, false
		}
		matched = &candidates[i]
	}

	if matched == nil {
		return nil, false
	}

	if !matched.Eligible() {
		slog.WarnContext(ctx, "member is not eligible for easy login", "member_id", matched.ID)
		return nil, false
	}

	return matched, true
}

// lastFourDigits strips every non-digit rune and returns the final four
// digits, or "" when the number is too short to have four.
func lastFourDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < 4 {
		return ""
	}

	return digits[len(digits)-4:]
}
