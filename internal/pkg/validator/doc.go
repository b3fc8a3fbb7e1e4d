// Package validator validates request and domain structs.
//
// Business code depends on the Validator interface. The concrete
// implementation wraps go-playground/validator v10 with English messages and
// reports failures keyed by the struct's json field names.
package validator
