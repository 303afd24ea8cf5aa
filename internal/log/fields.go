package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yanmxa/lumina/internal/message"
)

// turnMarshaler wraps a Turn for zap logging
type turnMarshaler message.Turn

func (t turnMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("role", string(t.Role))
	enc.AddString("text", t.Text)
	return nil
}

// turnsMarshaler wraps a slice of Turns for zap logging
type turnsMarshaler []message.Turn

func (t turnsMarshaler) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, turn := range t {
		_ = enc.AppendObject(turnMarshaler(turn))
	}
	return nil
}

// HistoryField creates a zap field for conversation turns
func HistoryField(turns []message.Turn) zap.Field {
	return zap.Array("history", turnsMarshaler(turns))
}

// imageMarshaler logs image metadata, never the payload
type imageMarshaler message.Image

func (i imageMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("media_type", i.MediaType)
	enc.AddInt("bytes", len(i.Data))
	return nil
}

// ImageField creates a zap field for an image
func ImageField(key string, img message.Image) zap.Field {
	return zap.Object(key, imageMarshaler(img))
}
