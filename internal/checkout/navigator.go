package checkout

// Target names how the client should navigate to the checkout URL.
type Target string

const (
	// TargetCurrent replaces the current browsing context.
	TargetCurrent Target = "current"
	// TargetExternal opens the URL outside the embedding frame.
	TargetExternal Target = "external"
)

// RedirectPlan tells the client where to send the shopper and how.
// FallbackURL is set when the preferred target may be blocked by the
// embedding environment; clients that fail to open the external target
// navigate to it in place instead.
type RedirectPlan struct {
	URL         string `json:"url"`
	Target      Target `json:"target"`
	FallbackURL string `json:"fallback_url,omitempty"`
}

// PlanRedirect decides the navigation strategy for a checkout URL. Embedded
// contexts (iframes, in-app browsers) get an external-target plan with the
// same URL as fallback so a blocked popup still lands the shopper on
// checkout. Top-level contexts navigate in place.
func PlanRedirect(url string, embedded bool) RedirectPlan {
	if embedded {
		return RedirectPlan{
			URL:         url,
			Target:      TargetExternal,
			FallbackURL: url,
		}
	}
	return RedirectPlan{
		URL:    url,
		Target: TargetCurrent,
	}
}
