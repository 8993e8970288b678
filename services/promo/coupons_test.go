package promo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const couponListing = "# 我的优惠券\n" +
	"## 麦辣鸡腿堡买一送一\n" +
	"**优惠**：¥15.5\n" +
	"**有效期**：2026-01-17 00:00-2026-01-31 23:59\n" +
	"<img src=\"https://img.example.com/burger.png\">\n" +
	"## 小食随心配\n" +
	"**有效期**：2026-01-20 00:00-2026-01-25 23:59\n" +
	"## 神秘券\n" +
	"**优惠**：¥9\n" +
	"### 使用说明\n" +
	"仅限堂食\n"

func TestExtractCoupons(t *testing.T) {
	coupons := ExtractCoupons(couponListing)
	require.Len(t, coupons, 3)

	require.Equal(t, CouponRecord{
		Title:    "麦辣鸡腿堡买一送一",
		Price:    "15.5",
		Validity: "2026-01-17 00:00-2026-01-31 23:59",
		Img:      "https://img.example.com/burger.png",
	}, coupons[0])

	// missing price falls back to "0"
	require.Equal(t, "小食随心配", coupons[1].Title)
	require.Equal(t, "0", coupons[1].Price)

	// missing validity falls back to the unknown sentinel, and the
	// level-3 heading inside the section does not split it
	require.Equal(t, "神秘券", coupons[2].Title)
	require.Equal(t, "9", coupons[2].Price)
	require.Equal(t, "未知", coupons[2].Validity)
}

func TestExtractCouponsEmpty(t *testing.T) {
	require.Empty(t, ExtractCoupons(""))
	require.Empty(t, ExtractCoupons("没有任何标题的文本"))
}

func TestShortValidity(t *testing.T) {
	for _, test := range []struct {
		name     string
		validity string
		want     string
	}{
		{"empty", "", "有效期未知"},
		{"unknown sentinel", "未知", "有效期未知"},
		{"date range keeps month-day", "2026-01-17 00:00-2026-01-31 23:59", "01-17 至 01-31"},
		{"short text passes through", "本周末有效", "本周末有效"},
		{"long text clipped", "这是一段非常非常非常长的有效期描述文字超过二十个字了", "这是一段非常非常非常长的有效期描述文字超"},
	} {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, ShortValidity(test.validity))
		})
	}
}
