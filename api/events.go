// File: api/events.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// HostEvent is the single typed union flowing across the host/script
// boundary: the frame pump posts these, and the script host drains them one
// batch per frame via framepump.Pump.PopEvents.

package api

// HostEventType enumerates every recognized event kind on the host/script
// boundary.
type HostEventType uint32

const (
	EventCallback HostEventType = iota
	EventSysUpdate
	EventSwap
	EventNewFrame
	EventUpdateDone
	EventPendingChannelMessages
	EventKeyPressed
	EventKeyReleased
	EventTextInput
	EventMouseMoved
	EventMousePressed
	EventMouseReleased
	EventWheelMoved
	EventFocus
	EventMouseFocus
	EventVisible
	EventResized
	EventUserDraw
	EventUserUpdate
	EventLateUserUpdate
	EventEndFrame
)

func (t HostEventType) String() string {
	switch t {
	case EventCallback:
		return "Callback"
	case EventSysUpdate:
		return "SysUpdate"
	case EventSwap:
		return "Swap"
	case EventNewFrame:
		return "NewFrame"
	case EventUpdateDone:
		return "UpdateDone"
	case EventPendingChannelMessages:
		return "PendingChannelMessages"
	case EventKeyPressed:
		return "KeyPressed"
	case EventKeyReleased:
		return "KeyReleased"
	case EventTextInput:
		return "TextInput"
	case EventMouseMoved:
		return "MouseMoved"
	case EventMousePressed:
		return "MousePressed"
	case EventMouseReleased:
		return "MouseReleased"
	case EventWheelMoved:
		return "WheelMoved"
	case EventFocus:
		return "Focus"
	case EventMouseFocus:
		return "MouseFocus"
	case EventVisible:
		return "Visible"
	case EventResized:
		return "Resized"
	case EventUserDraw:
		return "UserDraw"
	case EventUserUpdate:
		return "UserUpdate"
	case EventLateUserUpdate:
		return "LateUserUpdate"
	case EventEndFrame:
		return "EndFrame"
	default:
		return "Unknown"
	}
}

// HostEvent is {type, flags, args[5]} on the host/script boundary. args'
// meaning depends on Type: dt for update/draw/swap events, code/scan/mods
// for key events, x/y/dx/dy for pointer events, and so on per the event
// table.
type HostEvent struct {
	Type  HostEventType
	Flags uint32
	Args  [5]float64
}
