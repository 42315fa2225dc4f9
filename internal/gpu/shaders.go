package gpu

// Shared vertex stage for every fluid pass. texelSize is the destination
// grid's texel size; the four neighbour coordinates feed the stencil kernels.
const baseVertSrc = `#version 410 core

layout(location = 0) in vec2 aPosition;

uniform vec2 texelSize;

out vec2 vUv;
out vec2 vL;
out vec2 vR;
out vec2 vT;
out vec2 vB;

void main() {
    vUv = aPosition * 0.5 + 0.5;
    vL = vUv - vec2(texelSize.x, 0.0);
    vR = vUv + vec2(texelSize.x, 0.0);
    vT = vUv + vec2(0.0, texelSize.y);
    vB = vUv - vec2(0.0, texelSize.y);
    gl_Position = vec4(aPosition, 0.0, 1.0);
}
` + "\x00"

const clearFragSrc = `#version 410 core

uniform sampler2D uTexture;
uniform float value;

in vec2 vUv;
out vec4 FragColor;

void main() {
    FragColor = value * texture(uTexture, vUv);
}
` + "\x00"

const displayFragSrc = `#version 410 core

uniform sampler2D uTexture;

in vec2 vUv;
out vec4 FragColor;

void main() {
    FragColor = vec4(texture(uTexture, vUv).rgb, 1.0);
}
` + "\x00"

// Gaussian injection. point is in texture space; x distance is scaled by the
// viewport aspect so splats stay round on screen.
const splatFragSrc = `#version 410 core

uniform sampler2D uTarget;
uniform float aspectRatio;
uniform vec3 color;
uniform vec2 point;
uniform float radius;

in vec2 vUv;
out vec4 FragColor;

void main() {
    vec2 p = vUv - point;
    p.x *= aspectRatio;
    vec3 splat = exp(-dot(p, p) / radius) * color;
    vec3 base = texture(uTarget, vUv).xyz;
    FragColor = vec4(base + splat, 1.0);
}
` + "\x00"

// Semi-Lagrangian advection with hardware bilinear filtering.
const advectionFragSrc = `#version 410 core

uniform sampler2D uVelocity;
uniform sampler2D uSource;
uniform vec2 texelSize;
uniform float dt;
uniform float dissipation;

in vec2 vUv;
out vec4 FragColor;

void main() {
    vec2 coord = vUv - dt * texture(uVelocity, vUv).xy * texelSize;
    FragColor = dissipation * texture(uSource, coord);
}
` + "\x00"

// Advection for nearest-filtered fields: four taps blended in the shader.
const advectionManualFragSrc = `#version 410 core

uniform sampler2D uVelocity;
uniform sampler2D uSource;
uniform vec2 texelSize;
uniform float dt;
uniform float dissipation;

in vec2 vUv;
out vec4 FragColor;

vec4 bilerp(sampler2D sam, vec2 p) {
    vec4 st;
    st.xy = floor(p - 0.5) + 0.5;
    st.zw = st.xy + 1.0;
    vec4 uv = st * texelSize.xyxy;
    vec4 a = texture(sam, uv.xy);
    vec4 b = texture(sam, uv.zy);
    vec4 c = texture(sam, uv.xw);
    vec4 d = texture(sam, uv.zw);
    vec2 f = p - st.xy;
    return mix(mix(a, b, f.x), mix(c, d, f.x), f.y);
}

void main() {
    vec2 coord = gl_FragCoord.xy - dt * texture(uVelocity, vUv).xy;
    FragColor = dissipation * bilerp(uSource, coord);
    FragColor.a = 1.0;
}
` + "\x00"

// Divergence with reflective walls: a tap outside the grid reads the edge
// texel with its normal component negated.
const divergenceFragSrc = `#version 410 core

uniform sampler2D uVelocity;

in vec2 vL;
in vec2 vR;
in vec2 vT;
in vec2 vB;
out vec4 FragColor;

vec2 sampleVelocity(vec2 uv) {
    vec2 multiplier = vec2(1.0, 1.0);
    if (uv.x < 0.0) { uv.x = 0.0; multiplier.x = -1.0; }
    if (uv.x > 1.0) { uv.x = 1.0; multiplier.x = -1.0; }
    if (uv.y < 0.0) { uv.y = 0.0; multiplier.y = -1.0; }
    if (uv.y > 1.0) { uv.y = 1.0; multiplier.y = -1.0; }
    return multiplier * texture(uVelocity, uv).xy;
}

void main() {
    float L = sampleVelocity(vL).x;
    float R = sampleVelocity(vR).x;
    float T = sampleVelocity(vT).y;
    float B = sampleVelocity(vB).y;
    float div = 0.5 * (R - L + T - B);
    FragColor = vec4(div, 0.0, 0.0, 1.0);
}
` + "\x00"

const curlFragSrc = `#version 410 core

uniform sampler2D uVelocity;

in vec2 vL;
in vec2 vR;
in vec2 vT;
in vec2 vB;
out vec4 FragColor;

void main() {
    float L = texture(uVelocity, vL).y;
    float R = texture(uVelocity, vR).y;
    float T = texture(uVelocity, vT).x;
    float B = texture(uVelocity, vB).x;
    float vorticity = R - L - T + B;
    FragColor = vec4(vorticity, 0.0, 0.0, 1.0);
}
` + "\x00"

// Vorticity confinement. All four neighbour taps read the curl's first
// channel.
const vorticityFragSrc = `#version 410 core

uniform sampler2D uVelocity;
uniform sampler2D uCurl;
uniform float curl;
uniform float dt;

in vec2 vUv;
in vec2 vL;
in vec2 vR;
in vec2 vT;
in vec2 vB;
out vec4 FragColor;

void main() {
    float L = texture(uCurl, vL).x;
    float R = texture(uCurl, vR).x;
    float T = texture(uCurl, vT).x;
    float B = texture(uCurl, vB).x;
    float C = texture(uCurl, vUv).x;
    vec2 force = vec2(abs(T) - abs(B), abs(R) - abs(L));
    force *= 1.0 / length(force + 0.00001) * curl * C;
    vec2 vel = texture(uVelocity, vUv).xy;
    FragColor = vec4(vel + force * dt, 0.0, 1.0);
}
` + "\x00"

const pressureFragSrc = `#version 410 core

uniform sampler2D uPressure;
uniform sampler2D uDivergence;

in vec2 vUv;
in vec2 vL;
in vec2 vR;
in vec2 vT;
in vec2 vB;
out vec4 FragColor;

vec2 boundary(vec2 uv) {
    return min(max(uv, 0.0), 1.0);
}

void main() {
    float L = texture(uPressure, boundary(vL)).x;
    float R = texture(uPressure, boundary(vR)).x;
    float T = texture(uPressure, boundary(vT)).x;
    float B = texture(uPressure, boundary(vB)).x;
    float divergence = texture(uDivergence, vUv).x;
    float pressure = (L + R + B + T - divergence) * 0.25;
    FragColor = vec4(pressure, 0.0, 0.0, 1.0);
}
` + "\x00"

const gradientSubtractFragSrc = `#version 410 core

uniform sampler2D uPressure;
uniform sampler2D uVelocity;

in vec2 vUv;
in vec2 vL;
in vec2 vR;
in vec2 vT;
in vec2 vB;
out vec4 FragColor;

vec2 boundary(vec2 uv) {
    return min(max(uv, 0.0), 1.0);
}

void main() {
    float L = texture(uPressure, boundary(vL)).x;
    float R = texture(uPressure, boundary(vR)).x;
    float T = texture(uPressure, boundary(vT)).x;
    float B = texture(uPressure, boundary(vB)).x;
    vec2 velocity = texture(uVelocity, vUv).xy;
    velocity -= vec2(R - L, T - B);
    FragColor = vec4(velocity, 0.0, 1.0);
}
` + "\x00"

// Overlay vertex shader: pixel positions (y down) with a per-vertex local
// coordinate in [-1, 1] and a shape selector.
const overlayVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aLocal;
layout(location = 2) in float aShape;

uniform vec2 uResolution;

out vec2 vLocal;
flat out int vShape;

void main() {
    vec2 ndc = (aPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    vLocal = aLocal;
    vShape = int(aShape + 0.5);
}
` + "\x00"

// Overlay fragment shader. Shape 0 is the decorative gradient circle, 1 the
// rocket (nose at local y = -1), 2 a bullet.
const overlayFragSrc = `#version 410 core

in vec2 vLocal;
flat in int vShape;
out vec4 FragColor;

const vec3 circleA = vec3(200.0, 50.0, 30.0) / 255.0;
const vec3 circleB = vec3(30.0, 50.0, 200.0) / 255.0;

vec4 circle(vec2 p) {
    if (dot(p, p) > 1.0) discard;
    float t = clamp(dot(p + vec2(1.0, 0.5), vec2(2.0, 1.0)) / 5.0, 0.0, 1.0);
    vec3 c = t < 0.5 ? mix(circleA, circleB, t * 2.0) : mix(circleB, circleA, (t - 0.5) * 2.0);
    return vec4(c, 0.9);
}

vec4 rocket(vec2 p) {
    float x = abs(p.x);
    if (p.y < -0.6) {
        if (p.y < -1.0 || x > 0.25 * (p.y + 1.0) / 0.4) discard;
        return vec4(0.85, 0.2, 0.15, 1.0);
    }
    if (x < 0.25 && p.y < 0.8) {
        float shade = 0.75 + 0.25 * (1.0 - x / 0.25);
        return vec4(vec3(0.9, 0.9, 0.95) * shade, 1.0);
    }
    if (p.y > 0.4 && p.y < 0.9 && x < 0.25 + 0.4 * (p.y - 0.4) / 0.5) {
        return vec4(0.85, 0.2, 0.15, 1.0);
    }
    discard;
    return vec4(0.0);
}

vec4 bullet(vec2 p) {
    float d = length(p);
    if (d > 0.5) discard;
    float glow = 1.0 - d / 0.5;
    return vec4(1.0, 0.85, 0.3, 0.4 + 0.6 * glow);
}

void main() {
    if (vShape == 0) {
        FragColor = circle(vLocal);
    } else if (vShape == 1) {
        FragColor = rocket(vLocal);
    } else {
        FragColor = bullet(vLocal);
    }
}
` + "\x00"

// Blits the overlay layer, which holds premultiplied colour.
const compositeFragSrc = `#version 410 core

uniform sampler2D uLayer;

in vec2 vUv;
out vec4 FragColor;

void main() {
    FragColor = texture(uLayer, vUv);
}
` + "\x00"
