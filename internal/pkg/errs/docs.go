// Package errs is the error taxonomy shared by the order domain, the stores
// and the HTTP boundary. Callers classify an error with errors.Is against a
// sentinel, or errors.As when they need its fields.
//
//	Type                         Sentinel                 Raised by
//	ValueIsRequiredError         ErrValueIsRequired       constructors, missing id/orderAt/currency
//	ValueIsInvalidError          ErrValueIsInvalid        constructors, malformed fare or route
//	ValueIsOutOfRangeError       ErrValueIsOutOfRange     coordinates, distances, fare bounds
//	ObjectNotFoundError          ErrObjectNotFound        stores, unknown order id
//	ObjectAlreadyExistsError     ErrObjectAlreadyExists   stores under the reject create policy
//	VersionIsInvalidError        ErrVersionIsInvalid      stores losing an optimistic write
//	PreconditionViolationError   ErrPreconditionViolated  status transitions
//
// PreconditionViolationError carries a Reason such as
// "Order status is not ASSIGNING" that is shown to clients as is; the other
// messages are for logs. Constructors with a WithCause suffix keep the
// underlying driver error reachable through Unwrap.
package errs
