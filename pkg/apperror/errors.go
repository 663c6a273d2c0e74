package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// Sentinels for errors.Is; every typed error below matches exactly one of them.
var (
	ErrNotFound        = errors.New("not found")
	ErrPolicyViolation = errors.New("policy violation")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
)

// Entity kinds used in NotFoundError
const (
	EntitySeller        = "Seller"
	EntityStorePoint    = "StorePoint"
	EntityCashRegister  = "CashRegister"
	EntityEquipment     = "Equipment"
	EntitySupplier      = "Supplier"
	EntityCustomerOrder = "CustomerOrder"
	EntitySale          = "Sale"
	EntitySchedule      = "SellerSchedule"
)

type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFound(entity string, id fmt.Stringer) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id.String()}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type PolicyKind string

const (
	CashlessNotSupported PolicyKind = "CASHLESS_NOT_SUPPORTED"
	RegisterRequired     PolicyKind = "REGISTER_REQUIRED"
	MarkupExceeded       PolicyKind = "MARKUP_EXCEEDED"
	CashLimitExceeded    PolicyKind = "CASH_LIMIT_EXCEEDED"
)

// PolicyError is a business rule rejection. Percentage is set for
// MarkupExceeded, Limit and Attempted for CashLimitExceeded.
type PolicyError struct {
	Kind       PolicyKind
	Message    string
	Percentage decimal.Decimal
	Limit      decimal.Decimal
	Attempted  decimal.Decimal
}

func (e *PolicyError) Error() string { return e.Message }

func (e *PolicyError) Is(target error) bool { return target == ErrPolicyViolation }

func NewCashlessNotSupported(storePointName string) *PolicyError {
	return &PolicyError{
		Kind:    CashlessNotSupported,
		Message: fmt.Sprintf("store point %q cannot process cashless payments", storePointName),
	}
}

func NewRegisterRequired() *PolicyError {
	return &PolicyError{
		Kind:    RegisterRequired,
		Message: "a cash register is required for cash payments",
	}
}

// NewMarkupExceeded takes the combined markup as a fraction and the ceiling as a fraction
func NewMarkupExceeded(equipmentID fmt.Stringer, total, max decimal.Decimal) *PolicyError {
	pct := total.Mul(decimal.NewFromInt(100))
	return &PolicyError{
		Kind:       MarkupExceeded,
		Percentage: pct,
		Message: fmt.Sprintf("combined markup %s%% for equipment %s exceeds the maximum of %s%%",
			pct.StringFixed(2), equipmentID, max.Mul(decimal.NewFromInt(100)).String()),
	}
}

func NewCashLimitExceeded(limit, dayTotal, saleTotal decimal.Decimal) *PolicyError {
	attempted := dayTotal.Add(saleTotal)
	return &PolicyError{
		Kind:      CashLimitExceeded,
		Limit:     limit,
		Attempted: attempted,
		Message: fmt.Sprintf("cash limit exceeded: limit %s, today %s, sale %s, projected %s",
			limit.StringFixed(2), dayTotal.StringFixed(2), saleTotal.StringFixed(2), attempted.StringFixed(2)),
	}
}

type ConflictKind string

const (
	AlreadySold ConflictKind = "ALREADY_SOLD"
	NotOnSale   ConflictKind = "NOT_ON_SALE"
	Overlap     ConflictKind = "OVERLAP"
)

type ConflictError struct {
	Kind    ConflictKind
	ID      string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func NewAlreadySold(equipmentID fmt.Stringer) *ConflictError {
	return &ConflictError{
		Kind:    AlreadySold,
		ID:      equipmentID.String(),
		Message: fmt.Sprintf("equipment %s is already sold", equipmentID),
	}
}

// NewNotOnSale is returned for units still sitting on the central warehouse
func NewNotOnSale(equipmentID fmt.Stringer) *ConflictError {
	return &ConflictError{
		Kind:    NotOnSale,
		ID:      equipmentID.String(),
		Message: fmt.Sprintf("equipment %s is not placed on a store point", equipmentID),
	}
}

func NewOverlap(message string) *ConflictError {
	return &ConflictError{Kind: Overlap, Message: message}
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	f := e.Fields[0]
	return fmt.Sprintf("%s: field '%s' %s", e.Message, f.Field, f.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func NewValidation(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// IsPolicy reports whether err is a PolicyError of the given kind
func IsPolicy(err error, kind PolicyKind) bool {
	var pe *PolicyError
	return errors.As(err, &pe) && pe.Kind == kind
}

// IsConflict reports whether err is a ConflictError of the given kind
func IsConflict(err error, kind ConflictKind) bool {
	var ce *ConflictError
	return errors.As(err, &ce) && ce.Kind == kind
}

// HTTPStatus maps an error to the status code the API answers with
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPolicyViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Kind returns a stable machine readable error kind
func Kind(err error) string {
	var (
		nf *NotFoundError
		pe *PolicyError
		ce *ConflictError
		ve *ValidationError
	)
	switch {
	case errors.As(err, &nf):
		return "NOT_FOUND"
	case errors.As(err, &pe):
		return string(pe.Kind)
	case errors.As(err, &ce):
		return string(ce.Kind)
	case errors.As(err, &ve):
		return "VALIDATION"
	default:
		return "INTERNAL"
	}
}
