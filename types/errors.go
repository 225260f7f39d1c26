package types

import "cosmossdk.io/errors"

var (
	ErrInvalidRequest = errors.Register(ModuleName, 0, "invalid request")

	// Not-found errors: the caller supplied an identifier that does not exist.
	ErrShareClassNotFound = errors.Register(ModuleName, 2, "share class not found")
	ErrEpochNotFound      = errors.Register(ModuleName, 3, "epoch not found")

	// State-precondition errors: the caller attempted an operation out of sequence.
	ErrClaimRequired    = errors.Register(ModuleName, 4, "approved epochs must be claimed before mutating the request")
	ErrAlreadyApproved  = errors.Register(ModuleName, 5, "epoch already approved")
	ErrApprovalRequired = errors.Register(ModuleName, 6, "no approved epoch outstanding")

	// Validation errors: malformed input, rejected before any state change.
	ErrInvalidMetadataName      = errors.Register(ModuleName, 7, "invalid share class name")
	ErrInvalidMetadataSymbol    = errors.Register(ModuleName, 8, "invalid share class symbol")
	ErrInvalidSalt              = errors.Register(ModuleName, 9, "invalid salt")
	ErrAlreadyUsedSalt          = errors.Register(ModuleName, 10, "salt already used")
	ErrApprovalRatioOutOfBounds = errors.Register(ModuleName, 11, "approval ratio must be in (0,1]")
	ErrCannotSetFuturePrice     = errors.Register(ModuleName, 12, "price computed time is in the future")

	// Consistency errors: a derived read detected an impossible state for a
	// scoped query. Other reads remain unaffected.
	ErrNegativeIssuance = errors.Register(ModuleName, 13, "network issuance is negative")
)
