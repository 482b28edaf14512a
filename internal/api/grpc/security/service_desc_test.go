package security

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// protoPath is the reference contract relative to this package.
const protoPath = "../../../../api/catpoint/v1/security.proto"

// TestSecurityServiceDesc_MatchesProto verifies the hand-written descriptor lists the rpcs of the contract.
func TestSecurityServiceDesc_MatchesProto(t *testing.T) {
	t.Parallel()

	contents, err := os.ReadFile(filepath.Clean(protoPath))
	require.NoError(t, err)

	require.Contains(t, string(contents), "package catpoint.v1;")
	require.Contains(t, string(contents), "service SecurityService {")
	require.Equal(t, "catpoint.v1.SecurityService", SecurityServiceDesc.ServiceName)

	rpcs := regexp.MustCompile(`rpc (\w+)\(`).FindAllStringSubmatch(string(contents), -1)

	var fromProto []string
	for _, rpc := range rpcs {
		fromProto = append(fromProto, rpc[1])
	}

	var fromDesc []string
	for _, method := range SecurityServiceDesc.Methods {
		fromDesc = append(fromDesc, method.MethodName)
	}

	require.Equal(t, fromProto, fromDesc)
	require.Empty(t, SecurityServiceDesc.Streams)
}
