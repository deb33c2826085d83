package html

import (
	"slices"
	"testing"
)

func simpleListDocument() []string {
	return []string{
		liTag("AAA", 0, "1", false),
		liTag("BBB", 0, "1", false),
		liTag("CCC", 0, "1", false),
	}
}

func TestSimpleList(t *testing.T) {
	doc := mustDocument(t, simpleListDocument()...)
	assertHTMLEqual(t, mustCreateHTML(t, doc, defaultMetaData()), `
		<html>
			<ol data-list-type="decimal">
				<li>AAA</li>
				<li>BBB</li>
				<li>CCC</li>
			</ol>
		</html>
	`)
}

func TestListItemsSimple(t *testing.T) {
	doc := mustDocument(t, simpleListDocument()...)
	items := slices.Collect(ListItems(bodyElements(doc)[0], defaultMetaData()))
	if len(items) != 3 {
		t.Fatalf("expected 3 list nodes, got %d", len(items))
	}
}

func TestListItemsRestartable(t *testing.T) {
	doc := mustDocument(t, simpleListDocument()...)
	seq := ListItems(bodyElements(doc)[0], defaultMetaData())
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Fatalf("sequence is not restartable: %d vs %d", len(first), len(second))
	}
}

func TestListItemsNotAListItem(t *testing.T) {
	doc := mustDocument(t, pTag("AAA"), liTag("BBB", 0, "1", false))
	if items := slices.Collect(ListItems(bodyElements(doc)[0], defaultMetaData())); len(items) != 0 {
		t.Fatalf("expected empty sequence, got %d", len(items))
	}
}

func TestIsLastListItemSimple(t *testing.T) {
	doc := mustDocument(t, simpleListDocument()...)
	md := defaultMetaData()

	var got []bool
	for _, el := range bodyElements(doc) {
		got = append(got, IsLastListItem(el, md, "1"))
	}
	if want := []bool{false, false, true}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func tableInListDocument() []string {
	return []string{
		liTag("AAA", 0, "1", false),
		tableTag(
			[]string{pTag("BBB"), pTag("CCC")},
			[]string{pTag("DDD"), pTag("EEE")},
		),
		liTag("FFF", 0, "1", false),
		pTag("GGG"),
	}
}

func TestTableInList(t *testing.T) {
	doc := mustDocument(t, tableInListDocument()...)
	assertHTMLEqual(t, mustCreateHTML(t, doc, defaultMetaData()), `
		<html>
			<ol data-list-type="decimal">
				<li>AAA<br/>
					<table>
						<tr>
							<td>BBB</td>
							<td>CCC</td>
						</tr>
						<tr>
							<td>DDD</td>
							<td>EEE</td>
						</tr>
					</table>
				</li>
				<li>FFF</li>
			</ol>
			<p>GGG</p>
		</html>
	`)
}

func TestListItemsWithNestedTable(t *testing.T) {
	doc := mustDocument(t, tableInListDocument()...)
	items := slices.Collect(ListItems(bodyElements(doc)[0], defaultMetaData()))
	if len(items) != 3 {
		t.Fatalf("expected 3 list nodes, got %d", len(items))
	}
}

func TestIsLastListItemWithTable(t *testing.T) {
	doc := mustDocument(t, tableInListDocument()...)
	md := defaultMetaData()

	var got []bool
	for _, el := range bodyElements(doc) {
		got = append(got, IsLastListItem(el, md, "1"))
	}
	if want := []bool{false, false, true, false}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestListInterruptedByParagraph(t *testing.T) {
	doc := mustDocument(t,
		liTag("AAA", 0, "1", false),
		pTag("BBB"),
		liTag("CCC", 0, "1", false),
		tableTag(
			[]string{pTag("DDD"), pTag("EEE")},
			[]string{pTag("FFF"), pTag("GGG")},
		),
		liTag("HHH", 0, "1", false),
	)
	assertHTMLEqual(t, mustCreateHTML(t, doc, defaultMetaData()), `
		<html>
			<ol data-list-type="decimal">
				<li>AAA</li>
			</ol>
			<p>BBB</p>
			<ol data-list-type="decimal">
				<li>CCC<br/>
					<table>
						<tr>
							<td>DDD</td>
							<td>EEE</td>
						</tr>
						<tr>
							<td>FFF</td>
							<td>GGG</td>
						</tr>
					</table>
				</li>
				<li>HHH</li>
			</ol>
		</html>
	`)
}

func TestNestedLevels(t *testing.T) {
	doc := mustDocument(t,
		liTag("AAA", 0, "1", false),
		liTag("BBB", 1, "1", false),
		liTag("CCC", 1, "1", false),
		liTag("DDD", 0, "1", false),
	)
	assertHTMLEqual(t, mustCreateHTML(t, doc, defaultMetaData()), `
		<html>
			<ol data-list-type="decimal">
				<li>AAA
					<ol data-list-type="decimal">
						<li>BBB</li>
						<li>CCC</li>
					</ol>
				</li>
				<li>DDD</li>
			</ol>
		</html>
	`)
}

func TestListsWithDifferentNumbering(t *testing.T) {
	doc := mustDocument(t,
		liTag("AAA", 0, "1", false),
		liTag("BBB", 0, "2", false),
	)
	assertHTMLEqual(t, mustCreateHTML(t, doc, defaultMetaData()), `
		<html>
			<ol data-list-type="decimal">
				<li>AAA</li>
			</ol>
			<ol data-list-type="none">
				<li>BBB</li>
			</ol>
		</html>
	`)
}

func TestListStartingBelowBaseLevel(t *testing.T) {
	doc := mustDocument(t,
		liTag("AAA", 1, "1", false),
		liTag("BBB", 0, "1", false),
	)
	items := slices.Collect(ListItems(bodyElements(doc)[0], defaultMetaData()))
	if len(items) != 1 {
		t.Fatalf("shallower item must end the run, got %d nodes", len(items))
	}
	assertHTMLEqual(t, mustCreateHTML(t, doc, defaultMetaData()), `
		<html>
			<ol data-list-type="decimal">
				<li>AAA</li>
			</ol>
			<ol data-list-type="decimal">
				<li>BBB</li>
			</ol>
		</html>
	`)
}

func TestListType(t *testing.T) {
	cases := map[string]string{
		"decimal":     "decimal",
		"upperRoman":  "upper-roman",
		"lowerRoman":  "lower-roman",
		"upperLetter": "upper-alpha",
		"lowerLetter": "lower-alpha",
		"bullet":      "disc",
		"none":        "none",
		"ordinal":     "ordinal",
		"":            "decimal",
	}
	for in, want := range cases {
		if got := listType(in); got != want {
			t.Errorf("listType(%q) = %q, want %q", in, got, want)
		}
	}
}
