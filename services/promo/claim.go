package promo

import (
	"regexp"
	"strconv"
	"strings"
)

// ClaimResult summarizes one auto-claim attempt. When Message is
// non-empty nothing was claimable: the counts are zero and Coupons is
// empty, the message supersedes them.
type ClaimResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Coupons []string `json:"coupons"`
	Message string   `json:"message"`
}

const noCouponsMessage = "暂无可领取的优惠券"

// phrases the upstream uses when there is nothing to claim; checked
// before any numeric extraction so stray digits in an apology text
// cannot fabricate counts
var nothingAvailablePhrases = []string{"领券失败", "暂无可领取"}

var claimSuccessRegex = regexp.MustCompile(`成功[：:]\s*(\d+)`)
var claimFailedRegex = regexp.MustCompile(`失败[：:]\s*(\d+)`)
var boldSpanRegex = regexp.MustCompile(`\*\*(.+?)\*\*`)

// ExtractClaimResult parses a claim-attempt confirmation. The coupon
// names are the first `success` bold spans found in the text; the
// upstream does not tag which bold spans are coupon names, so this
// positional attribution can mismatch and is knowingly left that way.
func ExtractClaimResult(text string) ClaimResult {
	result := ClaimResult{Coupons: []string{}}
	if text == "" {
		return result
	}

	for _, phrase := range nothingAvailablePhrases {
		if strings.Contains(text, phrase) {
			result.Message = noCouponsMessage
			return result
		}
	}

	if m := claimSuccessRegex.FindStringSubmatch(text); m != nil {
		result.Success, _ = strconv.Atoi(m[1])
	}
	if m := claimFailedRegex.FindStringSubmatch(text); m != nil {
		result.Failed, _ = strconv.Atoi(m[1])
	}

	for _, m := range boldSpanRegex.FindAllStringSubmatch(text, -1) {
		if len(result.Coupons) >= result.Success {
			break
		}
		result.Coupons = append(result.Coupons, m[1])
	}

	return result
}
