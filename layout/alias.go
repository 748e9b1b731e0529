// Package layout re-exports the parts of gioui.org/layout used throughout
// tally, so that packages don't have to import both.
package layout

import "gioui.org/layout"

type Context = layout.Context
type Dimensions = layout.Dimensions
type Constraints = layout.Constraints
type Flex = layout.Flex
type Alignment = layout.Alignment
type Axis = layout.Axis
type FlexChild = layout.FlexChild
type Widget = layout.Widget
type Inset = layout.Inset
type List = layout.List
type ListElement = layout.ListElement

var UniformInset = layout.UniformInset
var Rigid = layout.Rigid
var Flexed = layout.Flexed
var Exact = layout.Exact
var NewContext = layout.NewContext

const (
	Start    Alignment = layout.Start
	End      Alignment = layout.End
	Middle   Alignment = layout.Middle
	Baseline Alignment = layout.Baseline
)

const (
	Horizontal Axis = layout.Horizontal
	Vertical   Axis = layout.Vertical
)
