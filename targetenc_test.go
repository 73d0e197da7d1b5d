package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPromo(t *testing.T) {

	dir := t.TempDir()
	modelFile := filepath.Join(dir, "promo.te")
	outFile := filepath.Join(dir, "promo.out.csv")

	fitCmd := FitCommand()
	fitCmd.SetArgs(strings.Split("-i datasets/promo/promo.train -o "+modelFile+
		" -t clicked --te-columns city,plan -f fold -b", " "))
	err := fitCmd.Execute()
	require.NoError(t, err)

	transformCmd := TransformCommand()
	transformCmd.SetArgs(strings.Split("-m "+modelFile+" -i datasets/promo/promo.test -o "+outFile+
		" --holdout none", " "))
	err = transformCmd.Execute()
	require.NoError(t, err)

	outBytes, err := os.ReadFile(outFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(outBytes)), "\n")
	require.Equal(t, "city,plan,fold,clicked,city_te,plan_te", lines[0])
	require.Equal(t, 5, len(lines))

	// kfold holdout against the training frame itself
	transformCmd = TransformCommand()
	transformCmd.SetArgs(strings.Split("-m "+modelFile+" -i datasets/promo/promo.train -o "+outFile+
		" --holdout kfold -n 0.01 -x 1234", " "))
	err = transformCmd.Execute()
	require.NoError(t, err)

	outBytes, err = os.ReadFile(outFile)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(string(outBytes)), "\n")
	require.Equal(t, 17, len(lines))
}
