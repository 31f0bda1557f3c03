package grpc

import (
	"context"
	"errors"

	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapError converts domain errors to gRPC status errors
// Mapping:
//   - *ValidationError   -> InvalidArgument
//   - *NotFoundError     -> NotFound
//   - ErrNotEnoughData   -> FailedPrecondition (guidance message)
//   - *CollaboratorError -> Unavailable (user-facing message)
//   - context errors     -> DeadlineExceeded / Canceled
//   - anything else      -> Internal
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return status.Error(codes.InvalidArgument, validationErr.Error())
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		return status.Error(codes.NotFound, notFoundErr.Error())
	}

	if errors.Is(err, domain.ErrNotEnoughData) {
		return status.Error(codes.FailedPrecondition, domain.NotEnoughDataGuidance)
	}

	var collabErr *domain.CollaboratorError
	if errors.As(err, &collabErr) {
		return status.Error(codes.Unavailable, collabErr.Message)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}

	return status.Errorf(codes.Internal, "%s", err.Error())
}
