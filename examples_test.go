package smizip

import "testing"

func TestLoadExampleMinimal(t *testing.T) {
	d, err := LoadExample("minimal")
	if err != nil {
		t.Fatalf("LoadExample(\"minimal\") error = %v", err)
	}
	if d.Size() != 256 {
		t.Fatalf("LoadExample(\"minimal\").Size() = %d, want 256", d.Size())
	}
	if !d.HasControlChars() {
		t.Fatalf("LoadExample(\"minimal\") is missing TAB/newline single-char tokens")
	}
}

func TestLoadExampleUnknown(t *testing.T) {
	if _, err := LoadExample("does-not-exist"); err == nil {
		t.Fatalf("LoadExample(\"does-not-exist\") should fail")
	}
}

func TestExampleNamesIncludesMinimal(t *testing.T) {
	names := ExampleNames()
	found := false
	for _, n := range names {
		if n == "minimal" {
			found = true
		}
	}
	if !found {
		t.Fatalf("ExampleNames() = %v, want to include \"minimal\"", names)
	}
}

func TestLoadExampleRoundTrip(t *testing.T) {
	d, err := LoadExample("minimal")
	if err != nil {
		t.Fatalf("LoadExample(\"minimal\") error = %v", err)
	}
	text := "CC(=O)Oc1ccccc1C(=O)O"
	zipped, err := d.Zip(text, FormatBytes)
	if err != nil {
		t.Fatalf("Zip() error = %v", err)
	}
	if got := d.Unzip(zipped.([]byte)); got != text {
		t.Fatalf("Unzip(Zip(%q)) = %q", text, got)
	}
}
