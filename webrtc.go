package media

import (
	"sync"

	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
)

// OutboundTrack publishes a captured Track to pion peer connections by
// implementing webrtc.TrackLocal. Packets written while the source
// track is disabled are dropped, so facade mute toggles carry onto the
// wire without renegotiation.
type OutboundTrack struct {
	source   Track
	streamID string
	codec    webrtc.RTPCodecCapability

	bindMu   sync.RWMutex
	bindings []webrtc.TrackLocalContext
}

// NewOutboundTrack wraps a captured track for publication. streamID
// groups tracks on the remote side (msid semantics).
func NewOutboundTrack(source Track, streamID string, codec webrtc.RTPCodecCapability) *OutboundTrack {
	return &OutboundTrack{
		source:   source,
		streamID: streamID,
		codec:    codec,
	}
}

// Source returns the captured track feeding this publication.
func (t *OutboundTrack) Source() Track { return t.source }

// Codec returns the codec capability.
func (t *OutboundTrack) Codec() webrtc.RTPCodecCapability { return t.codec }

func (t *OutboundTrack) ID() string         { return t.source.ID() }
func (t *OutboundTrack) StreamID() string   { return t.streamID }
func (t *OutboundTrack) RID() string        { return "" }
func (t *OutboundTrack) Kind() RTPCodecType { return t.source.Kind() }

// Bind implements webrtc.TrackLocal.
func (t *OutboundTrack) Bind(ctx webrtc.TrackLocalContext) (webrtc.RTPCodecParameters, error) {
	t.bindMu.Lock()
	defer t.bindMu.Unlock()

	t.bindings = append(t.bindings, ctx)

	// Find matching codec from negotiated parameters
	for _, p := range ctx.CodecParameters() {
		if p.MimeType == t.codec.MimeType {
			return p, nil
		}
	}

	// Fallback: return our codec with default payload type
	return webrtc.RTPCodecParameters{
		RTPCodecCapability: t.codec,
	}, nil
}

// Unbind implements webrtc.TrackLocal.
func (t *OutboundTrack) Unbind(ctx webrtc.TrackLocalContext) error {
	t.bindMu.Lock()
	defer t.bindMu.Unlock()

	for i, b := range t.bindings {
		if b.ID() == ctx.ID() {
			t.bindings = append(t.bindings[:i], t.bindings[i+1:]...)
			break
		}
	}
	return nil
}

// WriteRTP writes an RTP packet to all bound contexts. Packets are
// dropped while the source track is muted or after it stopped.
func (t *OutboundTrack) WriteRTP(p *rtp.Packet) error {
	if !t.source.Enabled() || t.source.Stopped() {
		return nil
	}

	t.bindMu.RLock()
	defer t.bindMu.RUnlock()

	for _, b := range t.bindings {
		if _, err := b.WriteStream().WriteRTP(&p.Header, p.Payload); err != nil {
			return err
		}
	}
	return nil
}

// Write writes raw RTP bytes to all bound contexts.
func (t *OutboundTrack) Write(b []byte) (int, error) {
	var p rtp.Packet
	if err := p.Unmarshal(b); err != nil {
		return 0, err
	}
	return len(b), t.WriteRTP(&p)
}

// Verify OutboundTrack implements webrtc.TrackLocal
var _ webrtc.TrackLocal = (*OutboundTrack)(nil)
