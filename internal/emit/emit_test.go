package emit

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/3-lines-studio/svger/internal/core"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

const arrowSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M15 18l-6-6 6-6" stroke-width="2"/></svg>`

func buildSpec(target core.Target, typescript bool, opts core.FrameworkOptions) core.ComponentSpec {
	spec, _ := core.NewComponentSpec("arrow-left", arrowSVG, target, typescript, opts, core.Defaults{})
	return spec
}

func TestEmitSnapshots(t *testing.T) {
	for _, target := range core.Targets {
		for _, typescript := range []bool{true, false} {
			name := string(target) + "/js"
			if typescript {
				name = string(target) + "/ts"
			}
			t.Run(name, func(t *testing.T) {
				unit, err := Emit(buildSpec(target, typescript, core.FrameworkOptions{}))
				if err != nil {
					t.Fatalf("Emit() error: %v", err)
				}
				snaps.MatchSnapshot(t, unit.Code)
			})
		}
	}
}

func TestEmitMarkers(t *testing.T) {
	tests := []struct {
		target  core.Target
		ext     string
		markers []string
	}{
		{core.TargetReact, "tsx", []string{
			`import React from "react";`,
			"export interface ArrowLeftProps extends SVGProps<SVGSVGElement>",
			"React.forwardRef<SVGSVGElement, ArrowLeftProps>(",
			"ref={ref}",
			`fill={props.fill || 'currentColor'}`,
			`<path d="M15 18l-6-6 6-6" strokeWidth="2"/>`,
			`ArrowLeft.displayName = "ArrowLeft";`,
			"export default ArrowLeft;",
		}},
		{core.TargetReactNative, "ts", []string{
			`import Svg, { Path } from "react-native-svg";`,
			"React.forwardRef<Svg, ArrowLeftProps>(",
			"color?: string;",
			`<Path d="M15 18l-6-6 6-6" strokeWidth="2"/>`,
			"</Svg>",
		}},
		{core.TargetVue, "vue", []string{
			`<script setup lang="ts">`,
			"withDefaults(defineProps<Props>(), {",
			"width: 24,",
			`v-bind="$attrs"`,
			`<path d="M15 18l-6-6 6-6" stroke-width="2"/>`,
		}},
		{core.TargetSvelte, "svelte", []string{
			`<script lang="ts">`,
			"export let width: string | number = 24;",
			"export let fill: string = 'currentColor';",
			"{...$$restProps}",
		}},
		{core.TargetAngular, "component.ts", []string{
			"import { Component, Input, ChangeDetectionStrategy } from '@angular/core';",
			"selector: 'arrow-left',",
			"standalone: true,",
			"changeDetection: ChangeDetectionStrategy.OnPush,",
			"export class ArrowLeftComponent {",
			"@Input() width: string | number = 24;",
			`[attr.width]="width"`,
		}},
		{core.TargetSolid, "tsx", []string{
			"import type { Component, JSX } from 'solid-js';",
			"export interface ArrowLeftProps extends JSX.SvgSVGAttributes<SVGSVGElement>",
			"const ArrowLeft: Component<ArrowLeftProps> = (props) => {",
			"class={local.className}",
			"{...others}",
		}},
		{core.TargetPreact, "tsx", []string{
			"import { h } from 'preact';",
			"const ArrowLeft: FunctionComponent<ArrowLeftProps> = ({",
			"class={className}",
			"width = 24,",
		}},
		{core.TargetLit, "ts", []string{
			"@customElement('arrow-left')",
			"export class ArrowLeft extends LitElement {",
			"@property({ type: String, reflect: true }) width = '24';",
			"'arrow-left': ArrowLeft;",
			"return html`",
		}},
		{core.TargetVanilla, "ts", []string{
			"export interface ArrowLeftOptions {",
			"export function ArrowLeft(options: ArrowLeftOptions = {}): SVGSVGElement {",
			"svg.setAttribute('viewBox', '0 0 24 24');",
			"svg.innerHTML = `<path d=\"M15 18l-6-6 6-6\" stroke-width=\"2\"/>`;",
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			unit, err := Emit(buildSpec(tt.target, true, core.FrameworkOptions{}))
			if err != nil {
				t.Fatalf("Emit() error: %v", err)
			}
			if unit.Extension != tt.ext {
				t.Errorf("expected extension %q, got %q", tt.ext, unit.Extension)
			}
			for _, marker := range tt.markers {
				if !strings.Contains(unit.Code, marker) {
					t.Errorf("expected output to contain %q\n%s", marker, unit.Code)
				}
			}
		})
	}
}

func TestEmitJavaScriptHasNoTypes(t *testing.T) {
	for _, target := range []core.Target{core.TargetReact, core.TargetReactNative, core.TargetSolid, core.TargetPreact, core.TargetVanilla, core.TargetLit} {
		t.Run(string(target), func(t *testing.T) {
			unit, err := Emit(buildSpec(target, false, core.FrameworkOptions{}))
			if err != nil {
				t.Fatalf("Emit() error: %v", err)
			}
			for _, banned := range []string{"interface ", "import type", "SVGSVGElement>", "declare global"} {
				if strings.Contains(unit.Code, banned) {
					t.Errorf("expected javascript output without %q\n%s", banned, unit.Code)
				}
			}
		})
	}
}

func TestEmitLitJavaScriptRegistersElement(t *testing.T) {
	unit, err := Emit(buildSpec(core.TargetLit, false, core.FrameworkOptions{}))
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if !strings.Contains(unit.Code, "customElements.define('arrow-left', ArrowLeft);") {
		t.Errorf("expected element registration\n%s", unit.Code)
	}
	if unit.Extension != "js" {
		t.Errorf("expected js extension, got %q", unit.Extension)
	}
}

func TestEmitReactOptions(t *testing.T) {
	on, off := true, false

	memo, err := Emit(buildSpec(core.TargetReact, true, core.FrameworkOptions{Memo: &on}))
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if !strings.Contains(memo.Code, "React.memo(React.forwardRef<SVGSVGElement, ArrowLeftProps>(") {
		t.Errorf("expected memoized forwardRef\n%s", memo.Code)
	}
	if !strings.Contains(memo.Code, "\n));\n") {
		t.Errorf("expected memo call to be closed\n%s", memo.Code)
	}

	plain, err := Emit(buildSpec(core.TargetReact, true, core.FrameworkOptions{ForwardRef: &off}))
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if strings.Contains(plain.Code, "forwardRef") || strings.Contains(plain.Code, "ref={ref}") {
		t.Errorf("expected no ref forwarding\n%s", plain.Code)
	}
	if !strings.Contains(plain.Code, "({ size, className, style, ...props }: ArrowLeftProps) => {") {
		t.Errorf("expected typed props parameter\n%s", plain.Code)
	}
}

func TestEmitVueOptionsAPI(t *testing.T) {
	off := false
	unit, err := Emit(buildSpec(core.TargetVue, true, core.FrameworkOptions{ScriptSetup: &off}))
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	for _, marker := range []string{`<script lang="ts">`, "defineComponent({", "name: 'ArrowLeft',", "width: { type: [String, Number], default: 24 },"} {
		if !strings.Contains(unit.Code, marker) {
			t.Errorf("expected output to contain %q\n%s", marker, unit.Code)
		}
	}
	if strings.Contains(unit.Code, "<script setup") {
		t.Errorf("expected options API\n%s", unit.Code)
	}
}

func TestEmitAngularSignals(t *testing.T) {
	on, off := true, false
	unit, err := Emit(buildSpec(core.TargetAngular, true, core.FrameworkOptions{Signals: &on, Standalone: &off}))
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	for _, marker := range []string{
		"import { Component, input } from '@angular/core';",
		"readonly width = input<string | number>(24);",
		`[attr.width]="width()"`,
	} {
		if !strings.Contains(unit.Code, marker) {
			t.Errorf("expected output to contain %q\n%s", marker, unit.Code)
		}
	}
	for _, banned := range []string{"standalone: true", "ChangeDetectionStrategy"} {
		if strings.Contains(unit.Code, banned) {
			t.Errorf("expected output without %q\n%s", banned, unit.Code)
		}
	}
}

func TestEmitEscapesMarkup(t *testing.T) {
	svg := "<svg><text>`${x}` {y}</text></svg>"

	vanilla, _ := core.NewComponentSpec("label", svg, core.TargetVanilla, true, core.FrameworkOptions{}, core.Defaults{})
	unit, err := Emit(vanilla)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if !strings.Contains(unit.Code, "<text>\\`\\${x}\\` {y}</text>") {
		t.Errorf("expected template literal escapes\n%s", unit.Code)
	}

	react, _ := core.NewComponentSpec("label", svg, core.TargetReact, true, core.FrameworkOptions{}, core.Defaults{})
	unit, err = Emit(react)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if !strings.Contains(unit.Code, "&#123;y&#125;") {
		t.Errorf("expected braces to be escaped\n%s", unit.Code)
	}
}

func TestEmitEscapesViewBox(t *testing.T) {
	svg := "<svg viewBox=\"0 0 24 24` ${x} {y}\"><path/></svg>"

	tests := []struct {
		target core.Target
		want   string
	}{
		{core.TargetAngular, "viewBox=\"0 0 24 24\\` $&#123;x&#125; &#123;y&#125;\""},
		{core.TargetLit, "viewBox=\"0 0 24 24\\` \\${x} {y}\""},
		{core.TargetSvelte, "viewBox=\"0 0 24 24` $&#123;x&#125; &#123;y&#125;\""},
		{core.TargetVue, "viewBox=\"0 0 24 24` $&#123;x&#125; &#123;y&#125;\""},
		{core.TargetReact, "viewBox=\"0 0 24 24` $&#123;x&#125; &#123;y&#125;\""},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			spec, _ := core.NewComponentSpec("icon", svg, tt.target, true, core.FrameworkOptions{}, core.Defaults{})
			unit, err := Emit(spec)
			if err != nil {
				t.Fatalf("Emit() error: %v", err)
			}
			if !strings.Contains(unit.Code, tt.want) {
				t.Errorf("expected output to contain %q\n%s", tt.want, unit.Code)
			}
		})
	}
}

func TestEmitUsesDocumentAttributes(t *testing.T) {
	svg := `<svg viewBox="0 0 16 16" width="16" height="16" fill="none" stroke="black"><path/></svg>`
	spec, _ := core.NewComponentSpec("box", svg, core.TargetReact, true, core.FrameworkOptions{}, core.Defaults{Fill: "red"})

	unit, err := Emit(spec)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	for _, marker := range []string{
		`viewBox="0 0 16 16"`,
		"props.width || 16",
		"props.fill || 'none'",
		"stroke={props.stroke || 'black'}",
	} {
		if !strings.Contains(unit.Code, marker) {
			t.Errorf("expected output to contain %q\n%s", marker, unit.Code)
		}
	}
}

func TestEmitUnknownTarget(t *testing.T) {
	_, err := Emit(core.ComponentSpec{Identifier: "Icon", Target: core.Target("ember")})

	var unsupported *core.UnsupportedFrameworkError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFrameworkError, got %v", err)
	}
}

func TestCustomElementTag(t *testing.T) {
	tests := map[string]string{
		"ArrowLeft": "arrow-left",
		"Logo":      "svg-logo",
		"XMLIcon":   "xml-icon",
	}
	for in, want := range tests {
		if got := CustomElementTag(in); got != want {
			t.Errorf("CustomElementTag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJSLiteral(t *testing.T) {
	tests := map[string]string{
		"24":           "24",
		"1.5":          "1.5",
		"100%":         "'100%'",
		"currentColor": "'currentColor'",
		"it's":         `'it\'s'`,
	}
	for in, want := range tests {
		if got := jsLiteral(in); got != want {
			t.Errorf("jsLiteral(%q) = %q, want %q", in, got, want)
		}
	}
}
