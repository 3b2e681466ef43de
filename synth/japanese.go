package synth

import (
	"fmt"
	"strings"

	"github.com/njclarkbmf/oraschemagen/schema"
)

// Japanese sample vocabulary. Values here are generated independently of
// any Latin-script counterpart with the same role: FIRST_NAME and
// FIRST_NAME_JP in one row are unrelated people.

var jpFamilyNames = []string{
	"佐藤", "鈴木", "高橋", "田中", "伊藤", "渡辺", "山本", "中村",
	"小林", "加藤", "吉田", "山田", "佐々木", "山口", "松本", "井上",
}

var jpGivenNames = []string{
	"太郎", "花子", "一郎", "美咲", "健太", "さくら", "大輔", "陽子",
	"翔太", "愛", "直樹", "恵美", "拓也", "由美", "浩二", "真理子",
}

var jpCities = []string{
	"東京", "大阪", "名古屋", "横浜", "京都", "神戸", "福岡", "札幌",
	"仙台", "広島", "川崎", "さいたま", "千葉", "北九州",
}

var jpPrefectures = []string{
	"北海道", "東京都", "大阪府", "京都府", "神奈川県", "愛知県",
	"福岡県", "宮城県", "広島県", "静岡県", "埼玉県", "千葉県",
}

var jpDistricts = []string{
	"中央区", "北区", "南区", "西区", "東区", "港区", "緑区", "青葉区",
}

var jpJobTitles = []string{
	"営業部長", "経理課長", "主任技師", "人事担当", "開発エンジニア",
	"販売員", "システム管理者", "経営企画", "品質保証担当", "工場長",
}

var jpWords = []string{
	"会社", "製品", "注文", "顧客", "部門", "売上", "市場", "品質",
	"管理", "開発", "計画", "報告", "会議", "契約", "納期", "在庫",
}

var jpSentences = []string{
	"本日の会議は午後三時から開始します。",
	"新製品の売上が先月より大幅に増加しました。",
	"納期については担当者までご連絡ください。",
	"品質管理の報告書を確認しました。",
	"来月の出荷計画を更新する必要があります。",
	"お客様からの問い合わせに対応しました。",
	"在庫の確認を毎週金曜日に行います。",
	"契約内容の変更は書面で通知します。",
}

// japanese synthesizes Japanese-script text sized to the column: full
// names for *NAME* columns, addresses, prefectures and so on, with a
// sentence or paragraph fallback depending on the declared width.
func (s *Synthesizer) japanese(c schema.Column) string {
	name := strings.ToUpper(c.Name)
	var v string
	switch {
	case strings.Contains(name, "FIRST") && strings.Contains(name, "NAME"):
		v = pick(s.rng, jpGivenNames)
	case strings.Contains(name, "LAST") && strings.Contains(name, "NAME"):
		v = pick(s.rng, jpFamilyNames)
	case strings.Contains(name, "NAME"):
		v = pick(s.rng, jpFamilyNames) + pick(s.rng, jpWords)
	case strings.Contains(name, "ADDRESS"):
		v = fmt.Sprintf("%s%s%d丁目%d番%d号",
			pick(s.rng, jpCities), pick(s.rng, jpDistricts),
			s.rng.Intn(9)+1, s.rng.Intn(20)+1, s.rng.Intn(15)+1)
	case strings.Contains(name, "CITY"):
		v = pick(s.rng, jpCities)
	case strings.Contains(name, "STATE") || strings.Contains(name, "PROVINCE") || strings.Contains(name, "PREFECTURE"):
		v = pick(s.rng, jpPrefectures)
	case strings.Contains(name, "COUNTRY"):
		v = "日本"
	case strings.Contains(name, "TITLE") || strings.Contains(name, "JOB"):
		v = pick(s.rng, jpJobTitles)
	case c.BaseType() == "CLOB" || c.BaseType() == "NCLOB":
		v = s.jpParagraph(3)
	default:
		v = pick(s.rng, jpSentences)
	}
	return truncate(v, c.MaxLength())
}

func (s *Synthesizer) jpParagraph(sentences int) string {
	parts := make([]string, 0, sentences)
	for i := 0; i < sentences; i++ {
		parts = append(parts, pick(s.rng, jpSentences))
	}
	return strings.Join(parts, "\n")
}
