// Package plant provides small process models to close a control loop
// against: a first-order thermal lag, a mass-spring-damper and a DC motor
// velocity model. Each implements [loop.Plant].
package plant
