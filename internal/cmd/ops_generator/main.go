// ops_generator generates the boilerplate element-wise ops of the stablehlo package.
//
// It is run with `go generate` from the stablehlo package directory.
package main

import (
	"bytes"
	"go/format"
	"os"
	"text/template"

	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

const outputFile = "gen_elementwise.go"

func main() {
	klog.InitFlags(nil)
	var buf bytes.Buffer
	must.M(fileTemplate.Execute(&buf, struct {
		Binary, Unary []opInfo
	}{binaryOps, unaryOps}))
	formatted := must.M1(format.Source(buf.Bytes()))
	must.M(os.WriteFile(outputFile, formatted, 0644))
	klog.Infof("Generated %s: %d binary ops, %d unary ops", outputFile, len(binaryOps), len(unaryOps))
}

var fileTemplate = template.Must(template.New(outputFile).Parse(`/***** File generated by ./internal/cmd/ops_generator. Don't edit it directly. *****/

package stablehlo

import (
	"github.com/gomlx/lazyhlo/internal/optypes"
)
{{range .Binary}}
// {{.Name}} implements the corresponding standard binary operation.
{{- if .Doc}}
//
// {{.Doc}}
{{- end}}
func {{.Name}}(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.{{.Name}}, lhs, rhs)
}
{{end}}
{{- range .Unary}}
// {{.Name}} implements the corresponding standard unary operation.
{{- if .Doc}}
//
// {{.Doc}}
{{- end}}
func {{.Name}}(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.{{.Name}}, operand)
}
{{end}}`))
