package internal

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
	"time"
)

func Test_format(t *testing.T) {
	type args struct {
		text   string
		params map[string]string
	}

	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "empty test",
			args: args{"", map[string]string{}},
			want: "",
		},

		{
			name: "name test",
			args: args{"hello this is me, ${name}", map[string]string{"name": "Shravan"}},
			want: "hello this is me, Shravan",
		},

		{
			name: "long sentence test",
			args: args{"${go} offers cool concurrency features like ${c1} and ${c2}. and it's ${adj}!", map[string]string{"go": "Golang", "c1": "goroutines", "c2": "channels", "adj": "amazing"}},
			want: "Golang offers cool concurrency features like goroutines and channels. and it's amazing!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := format(tt.args.text, tt.args.params); got != tt.want {
				t.Errorf("format() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteToFile(t *testing.T) {
	dir := t.TempDir()
	type args struct {
		text     string
		filename string
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "write to file",
			args: args{
				text:     "hello this is me, name",
				filename: filepath.Join(dir, "test.txt"),
			},
			wantErr: false,
		},
		{
			name: "write to file error",
			args: args{
				text:     "this test must fail",
				filename: filepath.Join(dir, "missing", "test.txt"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := WriteToFile(tt.args.text, tt.args.filename); (err != nil) != tt.wantErr {
				t.Errorf("WriteToFile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddExtension(t *testing.T) {
	tests := []struct {
		filename, ext, want string
	}{
		{"summary", "json", "summary.json"},
		{"summary.json", "json", "summary.json"},
		{"summary.csv", "json", "summary.csv.json"},
	}
	for _, tt := range tests {
		if got := AddExtension(tt.filename, tt.ext); got != tt.want {
			t.Errorf("AddExtension(%q, %q) = %q, want %q", tt.filename, tt.ext, got, tt.want)
		}
	}
}

func TestParseTimeUnit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"ms", "ms", time.Millisecond, false},
		{"micro", " US ", time.Microsecond, false},
		{"seconds", "s", time.Second, false},
		{"invalid", "fortnight", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeUnit(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeUnit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimeUnit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		unit    time.Duration
		want    string
	}{
		{"auto ms", 0.0123, 0, "12.3 ms"},
		{"auto s", 1.5, 0, "1.500 s"},
		{"forced us", 0.0005, time.Microsecond, "500.0 µs"},
		{"forced s", 0.25, time.Second, "0.250 s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(tt.seconds, tt.unit); got != tt.want {
				t.Errorf("FormatTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertToTimeUnitPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ConvertToTimeUnit() did not panic for an unknown unit")
		}
	}()
	ConvertToTimeUnit(1, 4*time.Second)
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(0.0123456, time.Millisecond); got != "12.3" {
		t.Errorf("FormatNumber() = %q, want %q", got, "12.3")
	}
	if got := FormatNumber(90, time.Minute); got != "1.500" {
		t.Errorf("FormatNumber() = %q, want %q", got, "1.500")
	}
}

func TestMapFunc(t *testing.T) {
	type args[T, S any] struct {
		function func(T) S
		slice    []T
	}
	tests := []struct {
		name string
		args args[int, string]
		want []string
	}{
		{name: "pass1", args: args[int, string]{func(i int) string { return strconv.Itoa(i) }, []int{}}, want: []string{}},
		{name: "pass2", args: args[int, string]{func(i int) string { return strconv.Itoa(i) }, []int{1, 2, 12, 15}}, want: []string{"1", "2", "12", "15"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapFunc[[]int, []string](tt.args.function, tt.args.slice); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MapFunc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterFunc(t *testing.T) {
	got := FilterFunc(func(i int) bool { return i%2 == 0 }, []int{1, 2, 3, 4})
	if !reflect.DeepEqual(got, []int{2, 4}) {
		t.Errorf("FilterFunc() = %v", got)
	}
}

func TestLogNoColor(t *testing.T) {
	var buf bytes.Buffer
	prevOutput, prevNoColor := Output, NO_COLOR
	Output = &buf
	NO_COLOR = true
	t.Cleanup(func() {
		Output = prevOutput
		NO_COLOR = prevNoColor
	})

	Log("red", "[ -f file ] && echo ok")
	if got := buf.String(); got != "[ -f file ] && echo ok\n" {
		t.Errorf("Log() wrote %q", got)
	}
}
