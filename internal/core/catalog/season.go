package catalog

import (
	"encoding/json"
	"math/bits"
	"strconv"
	"strings"
	"unicode"
)

const (
	yearRoundMarker     = "全年"
	followingYearMarker = "翌年"
	monthSuffix         = '月'

	// NoMonth 空月份集合的排序值，排在十二月之後
	NoMonth = 13
)

// 季節名稱對應月份
var seasonMonths = []struct {
	name   string
	months [3]int
}{
	{"春", [3]int{3, 4, 5}},
	{"夏", [3]int{6, 7, 8}},
	{"秋", [3]int{9, 10, 11}},
	{"冬", [3]int{12, 1, 2}},
}

// MonthSet 月份集合（1–12），以位元表示
type MonthSet uint16

const allMonths MonthSet = 0x1FFE

// AllMonths 全年十二個月
func AllMonths() MonthSet {
	return allMonths
}

// NewMonthSet 由月份建立集合，範圍外的值會被忽略
func NewMonthSet(months ...int) MonthSet {
	var s MonthSet
	for _, m := range months {
		s.add(m)
	}
	return s
}

// Has 是否包含某月
func (s MonthSet) Has(month int) bool {
	return month >= 1 && month <= 12 && s&(1<<uint(month)) != 0
}

// Len 月份數量
func (s MonthSet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// Empty 是否為空集合
func (s MonthSet) Empty() bool {
	return s == 0
}

// Min 最早的月份；空集合回傳 NoMonth
func (s MonthSet) Min() int {
	if s == 0 {
		return NoMonth
	}
	return bits.TrailingZeros16(uint16(s))
}

// Months 由小到大的月份
func (s MonthSet) Months() []int {
	months := make([]int, 0, s.Len())
	for m := 1; m <= 12; m++ {
		if s.Has(m) {
			months = append(months, m)
		}
	}
	return months
}

func (s MonthSet) String() string {
	parts := make([]string, 0, s.Len())
	for _, m := range s.Months() {
		parts = append(parts, strconv.Itoa(m))
	}
	return strings.Join(parts, ",")
}

// MarshalJSON 以月份陣列輸出
func (s MonthSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Months())
}

func (s *MonthSet) add(month int) {
	if month >= 1 && month <= 12 {
		*s |= 1 << uint(month)
	}
}

func (s *MonthSet) addRange(start, end int) {
	if start <= end {
		for m := max(start, 1); m <= min(end, 12); m++ {
			s.add(m)
		}
		return
	}
	// 跨年：start..12 與 1..end
	for m := max(start, 1); m <= 12; m++ {
		s.add(m)
	}
	for m := 1; m <= min(end, 12); m++ {
		s.add(m)
	}
}

// ParseSeason 將上市季節描述轉為月份集合。
//
// 規則依序套用：
//  1. 空字串回傳空集合
//  2. 含「全年」直接回傳十二個月
//  3. 春、夏、秋、冬各自加入三個月
//  4. 數字區間（3–5、10-翌年2）加入區間月份，起點大於終點時跨年
//  5. 只有在完全沒有區間時，才加入單一的「N月」
//
// 無法辨識的文字不會報錯，只會得到空或部分集合。
func ParseSeason(text string) MonthSet {
	if text == "" {
		return 0
	}
	if strings.Contains(text, yearRoundMarker) {
		return allMonths
	}

	var set MonthSet
	for _, season := range seasonMonths {
		if strings.Contains(text, season.name) {
			for _, m := range season.months {
				set.add(m)
			}
		}
	}

	runes := []rune(text)
	ranges := scanRanges(runes)
	for _, r := range ranges {
		set.addRange(r.start, r.end)
	}

	if len(ranges) == 0 {
		for _, m := range scanSingleMonths(runes) {
			set.add(m)
		}
	}

	return set
}

type monthRange struct {
	start, end int
}

// scanRanges 找出所有「數字 連字號 [翌年] 數字」
func scanRanges(text []rune) []monthRange {
	var ranges []monthRange
	for i := 0; i < len(text); {
		if !isDigit(text[i]) {
			i++
			continue
		}
		start, next := readNumber(text, i)
		if end, after, ok := matchRangeTail(text, next); ok {
			ranges = append(ranges, monthRange{start: start, end: end})
			i = after
			continue
		}
		i = next
	}
	return ranges
}

// matchRangeTail 從起始數字之後比對區間的其餘部分
func matchRangeTail(text []rune, pos int) (end int, next int, ok bool) {
	j := skipSpaces(text, pos)
	if j >= len(text) || !isRangeDash(text[j]) {
		return 0, pos, false
	}
	j = skipSpaces(text, j+1)
	j = skipMarker(text, j, followingYearMarker)
	j = skipSpaces(text, j)
	if j >= len(text) || !isDigit(text[j]) {
		return 0, pos, false
	}
	end, next = readNumber(text, j)
	return end, next, true
}

// scanSingleMonths 找出所有緊接「月」的數字
func scanSingleMonths(text []rune) []int {
	var months []int
	for i := 0; i < len(text); {
		if !isDigit(text[i]) {
			i++
			continue
		}
		n, next := readNumber(text, i)
		if next < len(text) && text[next] == monthSuffix {
			months = append(months, n)
		}
		i = next
	}
	return months
}

func readNumber(text []rune, pos int) (int, int) {
	n := 0
	for pos < len(text) && isDigit(text[pos]) {
		if n < 1000 {
			n = n*10 + int(text[pos]-'0')
		}
		pos++
	}
	return n, pos
}

func skipSpaces(text []rune, pos int) int {
	for pos < len(text) && unicode.IsSpace(text[pos]) {
		pos++
	}
	return pos
}

func skipMarker(text []rune, pos int, marker string) int {
	m := []rune(marker)
	if pos+len(m) > len(text) {
		return pos
	}
	for i, r := range m {
		if text[pos+i] != r {
			return pos
		}
	}
	return pos + len(m)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isRangeDash 半形連字號或 en dash
func isRangeDash(r rune) bool {
	return r == '-' || r == '–'
}
