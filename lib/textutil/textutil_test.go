package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{
			raw:      "",
			expected: "",
		},
		{
			raw:      `第一行\n第二行`,
			expected: "第一行\n第二行",
		},
		{
			raw:      `第一行\\n第二行`,
			expected: "第一行\n第二行",
		},
		{
			raw:      "a\n\n\n\nb",
			expected: "a\nb",
		},
		{
			raw:      "a\n \n \nb",
			expected: "a\nb",
		},
		{
			raw:      "  padded \n",
			expected: "padded",
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, Normalize(test.raw))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		`- **活动标题**：早餐日\n**活动内容介绍**：六点开始`,
		`双层转义\\n也要处理`,
		"a\n \n \nb\n\n\nc",
		`尾部反斜杠\`,
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		require.Equal(t, once, Normalize(once), "input: %q", raw)
	}
}

func TestCleanDisplay(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{
			raw:      `标题\n带换行`,
			expected: "标题 带换行",
		},
		{
			raw:      "**活动图片介绍**：某个说明",
			expected: "某个说明",
		},
		{
			raw:      "**活动图片介绍**: 冒号变体",
			expected: "冒号变体",
		},
		{
			raw:      "多    个   空格",
			expected: "多 个 空格",
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, CleanDisplay(test.raw))
	}
}

func TestEscapeHTML(t *testing.T) {
	require.Equal(t, "a &amp;&amp; b", EscapeHTML("a && b"))
	require.Equal(t, "&lt;img src=&quot;x&quot;&gt;", EscapeHTML(`<img src="x">`))
	// already-present entities get their ampersand escaped exactly once
	require.Equal(t, "&amp;quot;", EscapeHTML("&quot;"))
}

func TestTruncateRunes(t *testing.T) {
	require.Equal(t, "短文本", TruncateRunes("短文本", 300))
	require.Equal(t, "一二三...", TruncateRunes("一二三四五", 3))
}
