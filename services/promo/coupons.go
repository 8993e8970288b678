package promo

import (
	"regexp"
	"strings"
)

// CouponRecord is one owned coupon. Price stays textual (it is a
// decimal lifted straight out of the source text); Validity is the
// upstream's free-text window description, "未知" when it never said.
type CouponRecord struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Validity string `json:"validity"`
	Img      string `json:"img"`
}

const unknownValidity = "未知"

var couponHeadingRegex = regexp.MustCompile(`##\s+[^\n]+`)
var couponTitleRegex = regexp.MustCompile(`##\s*([^\n\r]+)`)
var couponPriceRegex = regexp.MustCompile(`\*\*优惠\*\*[：:]\s*¥?(\d+(?:\.\d+)?)`)
var couponValidityRegex = regexp.MustCompile(`\*\*有效期\*\*[：:]\s*([^\n]+)`)

// ExtractCoupons parses the owned-coupons listing. The text is one
// level-2 heading per coupon followed by labeled detail lines and an
// image tag; sections missing a price or validity line get their
// documented defaults instead of being dropped.
func ExtractCoupons(text string) []CouponRecord {
	if text == "" {
		return nil
	}

	var coupons []CouponRecord
	for _, section := range splitCouponSections(text) {
		if strings.TrimSpace(section) == "" {
			continue
		}

		titleMatch := couponTitleRegex.FindStringSubmatch(section)
		if titleMatch == nil {
			continue
		}
		title := strings.TrimSpace(titleMatch[1])
		if title == "" {
			continue
		}

		price := "0"
		if m := couponPriceRegex.FindStringSubmatch(section); m != nil {
			price = strings.TrimSpace(m[1])
		}

		validity := unknownValidity
		if m := couponValidityRegex.FindStringSubmatch(section); m != nil {
			validity = strings.TrimSpace(m[1])
		}

		coupons = append(coupons, CouponRecord{
			Title:    title,
			Price:    price,
			Validity: validity,
			Img:      firstImageSrc(section),
		})
	}

	return coupons
}

// splitCouponSections cuts the text immediately before every level-2
// heading. A "##" directly preceded by another '#' belongs to a deeper
// heading level and does not start a section.
func splitCouponSections(text string) []string {
	matches := couponHeadingRegex.FindAllStringIndex(text, -1)

	var starts []int
	for _, m := range matches {
		if m[0] > 0 && text[m[0]-1] == '#' {
			continue
		}
		starts = append(starts, m[0])
	}
	if len(starts) == 0 {
		return nil
	}

	sections := make([]string, 0, len(starts))
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		sections = append(sections, text[start:end])
	}
	return sections
}

var validityRangeRegex = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s*[\d:]*\s*-\s*(\d{4}-\d{2}-\d{2})`)

// ShortValidity compresses a validity window for the notification
// message: a detected date range becomes "MM-DD 至 MM-DD", anything
// else is clipped to 20 runes.
func ShortValidity(validity string) string {
	if validity == "" || validity == unknownValidity {
		return "有效期未知"
	}

	if m := validityRangeRegex.FindStringSubmatch(validity); m != nil {
		// drop the year, keep MM-DD
		return m[1][5:] + " 至 " + m[2][5:]
	}

	runes := []rune(validity)
	if len(runes) > 20 {
		return string(runes[:20])
	}
	return validity
}
