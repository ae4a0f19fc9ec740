package request

import (
	"time"

	"servihub/internal/domain/entities"
)

// ReportLocationRequest carries one position sample from the professional's
// device. Timestamp is the device clock; stale samples lose silently.
type ReportLocationRequest struct {
	Lat       float64 `json:"lat" binding:"required"`
	Lng       float64 `json:"lng" binding:"required"`
	Timestamp string  `json:"timestamp" binding:"required"` // RFC 3339
}

func (r ReportLocationRequest) ToLocation() entities.ProfessionalLocation {
	ts, _ := time.Parse(time.RFC3339, r.Timestamp)
	return entities.ProfessionalLocation{
		Lat:       r.Lat,
		Lng:       r.Lng,
		Timestamp: ts,
	}
}

// VerifyCodeRequest carries the arrival code the client read out on site.
type VerifyCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// SignServiceRequest uploads the client's sign-off. The blob is opaque to the
// server (typically base64 image data).
type SignServiceRequest struct {
	SignatureBlob string `json:"signature_blob" binding:"required"`
}
