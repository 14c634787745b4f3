package tableio_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/lvltab/colkey"
	"github.com/katalvlaran/lvltab/reshape"
	"github.com/katalvlaran/lvltab/table"
	"github.com/katalvlaran/lvltab/tableio"
)

// ExampleReadCSV shows the full adapter→core→adapter pipeline:
// CSV in, narrow, CSV out.
func ExampleReadCSV() {
	in := strings.NewReader(
		"subject,dose10mg,dose100mg\n" +
			"a,0.11,1.21\n" +
			"b,0.12,NA\n")

	wide, err := tableio.ReadCSV(in,
		tableio.WithTypes(table.Text, table.Real, table.Real))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	spec, _ := colkey.Pattern(`dose(\d+)mg`)
	long, _, err := reshape.Narrow(wide, reshape.NarrowOptions{
		KeySpec:     spec,
		KeyColumns:  []string{"dose"},
		ValueColumn: "response",
		Strict:      true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_ = tableio.WriteCSV(os.Stdout, long)
	// Output:
	// subject,dose,response
	// a,10,0.11
	// a,100,1.21
	// b,10,0.12
	// b,100,NA
}
