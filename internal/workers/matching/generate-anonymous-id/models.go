// internal/workers/matching/generate-anonymous-id/models.go
package generateanonymousid

type Input struct {
	GuideID string `json:"guideId"`
}

type Output struct {
	GuideID     string `json:"guideId"`
	AnonymousID string `json:"anonymousId"`
}
