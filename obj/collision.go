package obj

// Collide reports whether two actors overlap. Touching exactly at the
// buffered boundary does not count.
func Collide(a, b *Actor) bool {
	d := a.Position.Distance(b.Position)
	return d < a.Radius+b.Radius-CollisionBuffer
}

// ResolveCollision applies one tick of contact response. The struck actor
// takes the damage and is pushed away from the collider along the
// collider-to-struck normal; the collider only flashes its contact color.
// Coincident centers push along x so the pair always separates eventually.
func ResolveCollision(struck, collider *Actor) {
	struck.Damage(CollisionDamage)
	collider.StartFlash()

	n := struck.Position.Sub(collider.Position)
	if n.LengthSq() == 0 {
		n.X = 1
	}
	struck.Position = struck.Position.Add(n.Normalize().Mult(CollisionPushBack))
}
