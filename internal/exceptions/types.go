package exceptions

import "fmt"

type ServiceError struct {
	StatusCode int
	Type       string
	Cause      error
}

func (se *ServiceError) Error() string {
	return se.Cause.Error()
}

// RequestError is the contract every domain error fulfills. ErrorType is the
// machine-readable discriminator surfaced on the GraphQL error channel.
type RequestError interface {
	ToServiceError() *ServiceError
	ErrorType() string
	Error() string
}

type ConflictError struct {
	Resource string
	Id       string
}

func (ce *ConflictError) Error() string {
	return fmt.Sprintf("Found conflicting %s with id: %s", ce.Resource, ce.Id)
}

func (ce *ConflictError) ErrorType() string {
	return "ConflictException"
}

func (ce *ConflictError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 409,
		Type:       ce.ErrorType(),
		Cause:      ce,
	}
}

func Conflict(resource string, id string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Id:       id,
	}
}

type NotFoundError struct {
	Resource string
	Id       string
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find a %s with id: %s", nfe.Resource, nfe.Id)
}

func (nfe *NotFoundError) ErrorType() string {
	return "NotFoundException"
}

func (nfe *NotFoundError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 404,
		Type:       nfe.ErrorType(),
		Cause:      nfe,
	}
}

func NotFound(resource string, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Id:       id,
	}
}

type InvalidInputError struct {
	Message string
}

func (ie *InvalidInputError) Error() string {
	return ie.Message
}

func (ie *InvalidInputError) ErrorType() string {
	return "ValidationException"
}

func (ie *InvalidInputError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 400,
		Type:       ie.ErrorType(),
		Cause:      ie,
	}
}

func InvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{
		Message: message,
	}
}

type UnauthorizedError struct {
	Message string
}

func (ue *UnauthorizedError) Error() string {
	if ue.Message == "" {
		return "Unauthorized"
	}
	return ue.Message
}

func (ue *UnauthorizedError) ErrorType() string {
	return "UnauthorizedException"
}

func (ue *UnauthorizedError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 401,
		Type:       ue.ErrorType(),
		Cause:      ue,
	}
}

func Unauthorized(message string) *UnauthorizedError {
	return &UnauthorizedError{
		Message: message,
	}
}
