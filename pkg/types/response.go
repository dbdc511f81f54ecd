// Package types holds the wire envelopes shared by the JSON endpoints and
// the idempotency replay store.
package types

// SuccessEnvelope wraps every successful JSON body, e.g.
// {"data":{"redirect_url":"..."}} from /create-checkout.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape. Details is populated only for codes
// whose metadata allows it; provider failures stay generic.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
