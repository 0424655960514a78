package bind_group_provider

// BufferWrite is one queued upload into the buffer at Binding on Provider.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
