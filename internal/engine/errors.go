package engine

import "github.com/pkg/errors"

// Precondition failures. A transition that returns one of these has not
// mutated the state.
var (
	ErrInsufficientEnergy      = errors.New("exhausted: you need to sleep")
	ErrFootagePending          = errors.New("footage pending edit")
	ErrNoFootage               = errors.New("no footage to edit")
	ErrInsufficientFunds       = errors.New("too expensive")
	ErrInsufficientSkillPoints = errors.New("not enough skill points")
	ErrPerkUnknown             = errors.New("unknown perk")
	ErrPerkUnlocked            = errors.New("perk already unlocked")
	ErrAlreadyOwned            = errors.New("already owned")
	ErrTierLocked              = errors.New("buy the previous tier first")
	ErrUnknownItem             = errors.New("unknown item")
	ErrNoEvent                 = errors.New("no event pending")
	ErrInvalidChoice           = errors.New("invalid event choice")
	ErrUnknownVideo            = errors.New("unknown video")
	ErrUnknownComment          = errors.New("unknown comment")
	ErrCommentHearted          = errors.New("comment already hearted")
	ErrNoOffer                 = errors.New("no contract offer pending")
	ErrContractActive          = errors.New("a contract is already active")
	ErrInvalidGenre            = errors.New("invalid genre")
)
