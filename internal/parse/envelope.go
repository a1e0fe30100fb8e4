package parse

import (
	"encoding/json"
	"fmt"

	"github.com/vk/netcli/internal/textfsm"
)

type errorBody struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

type failureEnvelope struct {
	OK    bool      `json:"ok"`
	Error errorBody `json:"error"`
}

type successEnvelope struct {
	OK       bool             `json:"ok"`
	Platform string           `json:"platform,omitempty"`
	Vendor   string           `json:"vendor,omitempty"`
	Key      string           `json:"commandKey"`
	Records  []textfsm.Record `json:"records"`
}

// ResultJSON renders the success envelope for a result, byte-identical to
// what the JSON entry points return. The HTTP surface uses it together with
// ErrorJSON so it can set a status from the typed error while keeping the
// body shape.
func ResultJSON(result *Result) string {
	return successJSON(result.Platform, result.Key, result.Records)
}

// ErrorJSON renders the failure envelope for a code and message. It also
// serves transport-level failures that happen before the facade runs, such
// as an unreadable request body.
func ErrorJSON(code Code, message string) string {
	return failureJSON(&Error{Code: code, Message: message})
}

func successJSON(platform, key string, records []textfsm.Record) string {
	return marshalSuccess(successEnvelope{OK: true, Platform: platform, Key: key, Records: records})
}

func vendorJSON(vendor, key string, records []textfsm.Record) string {
	return marshalSuccess(successEnvelope{OK: true, Vendor: vendor, Key: key, Records: records})
}

func marshalSuccess(env successEnvelope) string {
	if env.Records == nil {
		env.Records = []textfsm.Record{}
	}
	data, err := json.Marshal(env)
	if err != nil {
		return failureJSON(errorf(CodeAllocationFailure, "could not encode records envelope: %v", err))
	}
	return string(data)
}

func failureJSON(perr *Error) string {
	data, err := json.Marshal(failureEnvelope{Error: errorBody{Code: perr.Code, Message: perr.Message}})
	if err != nil {
		// Last-resort envelope with a fixed message; the codes are known
		// JSON-safe strings.
		return fmt.Sprintf(`{"ok":false,"error":{"code":%q,"message":"envelope encoding failed"}}`, CodeAllocationFailure)
	}
	return string(data)
}
