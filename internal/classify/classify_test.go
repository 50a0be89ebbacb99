package classify

import (
	"testing"

	"github.com/starford/dagaz/internal/models"
)

func testClassifier() *Classifier {
	react := models.Category{Name: "React", Heading: "## React"}
	ts := models.Category{Name: "TypeScript", Heading: "## TypeScript"}
	arch := models.Category{Name: "前端架構", Heading: "## 前端架構"}
	cross := models.Category{Name: "跨領域綜合", Heading: "## 跨領域綜合"}

	return New([]Rule{
		{Category: react, Keywords: []string{"react", "hook", "component", "jsx", "useeffect", "usestate"}},
		{Category: ts, Keywords: []string{"typescript", "type", "泛型", "型別", "generic", "interface"}},
		{Category: arch, Keywords: []string{"架構", "效能", "測試", "architecture", "performance", "testing", "bundler"}},
	}, cross)
}

func TestClassify_FirstRuleWins(t *testing.T) {
	c := testClassifier()
	// Title matches both the React set ("hook") and the TypeScript set
	// ("type") — rule order resolves to React.
	got := c.Classify("Typed Hooks in React")
	if got.Name != "React" {
		t.Errorf("category = %q, want React", got.Name)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := testClassifier()
	if got := c.Classify("REACT RENDER CYCLES"); got.Name != "React" {
		t.Errorf("category = %q, want React", got.Name)
	}
}

func TestClassify_UnicodeKeywords(t *testing.T) {
	c := testClassifier()
	if got := c.Classify("TypeScript 泛型（Generics）"); got.Name != "TypeScript" {
		t.Errorf("category = %q, want TypeScript", got.Name)
	}
	if got := c.Classify("效能優化與測試策略"); got.Name != "前端架構" {
		t.Errorf("category = %q, want 前端架構", got.Name)
	}
}

func TestClassify_CatchAll(t *testing.T) {
	c := testClassifier()
	if got := c.Classify("Completely unrelated musings"); got.Name != "跨領域綜合" {
		t.Errorf("category = %q, want 跨領域綜合", got.Name)
	}
}

func TestClassify_Total(t *testing.T) {
	c := testClassifier()
	titles := []string{"", "   ", "42", "泛型", "react vs vue", "無題"}
	for _, title := range titles {
		got := c.Classify(title)
		if got.Name == "" {
			t.Errorf("Classify(%q) produced no category", title)
		}
	}
}

func TestCategories_Order(t *testing.T) {
	c := testClassifier()
	cats := c.Categories()
	want := []string{"React", "TypeScript", "前端架構", "跨領域綜合"}
	if len(cats) != len(want) {
		t.Fatalf("len = %d, want %d", len(cats), len(want))
	}
	for i, w := range want {
		if cats[i].Name != w {
			t.Errorf("cats[%d] = %q, want %q", i, cats[i].Name, w)
		}
	}
}
