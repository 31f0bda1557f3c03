package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// decodeRequest maps a Struct message onto a request type through its JSON form
func decodeRequest(req *structpb.Struct, dst any) error {
	if req == nil {
		return nil
	}
	raw, err := protojson.Marshal(req)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	return nil
}

// encodeResponse maps a response type onto a Struct message through its JSON form
func encodeResponse(src any) (*structpb.Struct, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// NewRequest builds a request message from a JSON-shaped value
func NewRequest(src any) (*structpb.Struct, error) {
	return encodeResponse(src)
}

// DecodeResponse maps a response message onto dst through its JSON form
func DecodeResponse(resp *structpb.Struct, dst any) error {
	raw, err := protojson.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
