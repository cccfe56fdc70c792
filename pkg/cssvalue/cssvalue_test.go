package cssvalue

import "testing"

func TestIsColor(t *testing.T) {
	valid := []string{
		"#fff", "#ffffff", "#FFFFFF80", "#abcd",
		"black", "RebeccaPurple", "transparent",
		"rgb(255, 0, 0)", "rgba(0,0,0,0.5)", "hsl(120 50% 50% / 0.3)", "oklch(70% 0.1 200)",
		"  #123456  ",
	}
	for _, value := range valid {
		if !IsColor(value) {
			t.Fatalf("expected %q to be a color", value)
		}
	}

	invalid := []string{
		"", "#ff", "#gggggg", "#fffff", "notacolor",
		"red; position: fixed", "red blue", "url(x.png)",
		"rgb(255, 0, 0", "rgb(var(--x))", "expression(alert(1))",
		`"red"`, "red}", "<script>", "#fff;",
	}
	for _, value := range invalid {
		if IsColor(value) {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestIsLength(t *testing.T) {
	valid := []string{"0", "1rem", "12px", "5%", "1rem 2rem", "0 1em 2em 3em", "0.5em", " 4px "}
	for _, value := range valid {
		if !IsLength(value) {
			t.Fatalf("expected %q to be a length", value)
		}
	}

	invalid := []string{
		"", "1", "-1px", "1furlong", "auto", "1px 2px 3px 4px 5px",
		"1rem; color: red", "calc(1px + 2px)", "1rem}", "url(x)",
	}
	for _, value := range invalid {
		if IsLength(value) {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero("0") || !IsZero(" 0 ") {
		t.Fatalf("expected literal zero to be detected")
	}
	if IsZero("0px") || IsZero("00") || IsZero("") {
		t.Fatalf("expected only the literal 0 to count as zero")
	}
}
