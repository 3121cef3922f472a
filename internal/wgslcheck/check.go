// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgslcheck runs the naga WGSL front end on shader text and inspects
// the resulting IR: diagnostics for compile logs, entry points and the
// @location interface between stages for link checks.
package wgslcheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Compile parses and lowers WGSL text, optionally validating the IR.
//
// It returns the lowered module, or nil and a non-empty diagnostic log in the
// shape of a driver info log (one problem per line, source context when naga
// provides it).
func Compile(text string, validate bool) (*ir.Module, string) {
	ast, err := naga.Parse(text)
	if err != nil {
		return nil, diagnostics(err)
	}

	module, err := naga.LowerWithSource(ast, text)
	if err != nil {
		return nil, diagnostics(err)
	}

	if validate {
		verrs, err := naga.Validate(module)
		if err != nil {
			return nil, diagnostics(err)
		}
		if len(verrs) > 0 {
			var sb strings.Builder
			for i := range verrs {
				fmt.Fprintf(&sb, "error: %s\n", verrs[i].Error())
			}
			return nil, sb.String()
		}
	}
	return module, ""
}

// errorList and sourceError match naga's span-carrying lowering errors,
// whose concrete types are internal to the wgsl package.
type (
	errorList interface {
		error
		FormatAll() string
	}
	sourceError interface {
		error
		FormatWithContext() string
	}
)

// diagnostics formats a front-end error. Lowering errors carry spans and are
// rendered with a caret under the offending column.
func diagnostics(err error) string {
	var list errorList
	if errors.As(err, &list) {
		if text := list.FormatAll(); text != "" {
			return ensureNewline(text)
		}
	}
	var single sourceError
	if errors.As(err, &single) {
		return ensureNewline(single.FormatWithContext())
	}
	return "error: " + ensureNewline(err.Error())
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// EntryPoint returns the first entry point of the given stage together with
// its function, or nils.
func EntryPoint(m *ir.Module, stage ir.ShaderStage) (*ir.EntryPoint, *ir.Function) {
	if m == nil {
		return nil, nil
	}
	for i := range m.EntryPoints {
		ep := &m.EntryPoints[i]
		if ep.Stage != stage {
			continue
		}
		return ep, &ep.Function
	}
	return nil, nil
}
