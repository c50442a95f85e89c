package requests

import "love-unlock/internal/domain/unlock"

// UnlockRequest accepts both the current field names and the legacy ones.
type UnlockRequest struct {
	Code          string `json:"code"`
	Slug          string `json:"slug"`
	Plan          string `json:"plan"`
	TransactionID string `json:"transactionId"`
	TrxID         string `json:"trx_id"`
	SenderSuffix  string `json:"senderSuffix"`
	SenderLast3   string `json:"sender_last3"`
}

func (r UnlockRequest) Submission(clientIP string, userAgent string) unlock.Submission {
	return unlock.Submission{
		Code:          firstNonEmpty(r.Code, r.Slug),
		Plan:          r.Plan,
		TransactionID: firstNonEmpty(r.TransactionID, r.TrxID),
		SenderSuffix:  firstNonEmpty(r.SenderSuffix, r.SenderLast3),
		ClientIP:      clientIP,
		UserAgent:     userAgent,
	}
}

type AdminUnlockRequest struct {
	Code string `json:"code"`
	Slug string `json:"slug"`
	Plan string `json:"plan"`
}

func (r AdminUnlockRequest) PageCode() string {
	return firstNonEmpty(r.Code, r.Slug)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
