package promo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractClaimResult(t *testing.T) {
	for _, test := range []struct {
		name string
		text string
		want ClaimResult
	}{
		{
			name: "counts and coupon names",
			text: "领取完成！成功：3 失败：1\n**优惠A**\n**优惠B**\n**优惠C**\n**其他强调文字**",
			want: ClaimResult{
				Success: 3,
				Failed:  1,
				Coupons: []string{"优惠A", "优惠B", "优惠C"},
			},
		},
		{
			name: "nothing to claim supersedes digits",
			text: "暂无可领取的优惠券，今日已领取 5 张，成功：2",
			want: ClaimResult{Coupons: []string{}, Message: "暂无可领取的优惠券"},
		},
		{
			name: "claim failure phrase",
			text: "领券失败，请稍后再试",
			want: ClaimResult{Coupons: []string{}, Message: "暂无可领取的优惠券"},
		},
		{
			name: "empty input",
			text: "",
			want: ClaimResult{Coupons: []string{}},
		},
		{
			name: "more successes than bold spans",
			text: "成功：4 失败：0\n**仅此一张**",
			want: ClaimResult{Success: 4, Coupons: []string{"仅此一张"}},
		},
		{
			name: "zero successes ignore bold spans",
			text: "成功：0 失败：2 **不该出现**",
			want: ClaimResult{Failed: 2, Coupons: []string{}},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, ExtractClaimResult(test.text))
		})
	}
}
