// Package security implements the gRPC transport for the security service.
//
// Messages are protobuf well-known types: snapshots and sensors travel as
// structpb.Struct, scalar arguments as wrapperspb values. The service
// descriptor is declared here so the package has no generated code.
package security
